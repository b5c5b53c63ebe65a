package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/interview-agent/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	inactiveUserTTL = time.Hour
	warningInterval = 30 * time.Second
)

// userLimit is the token bucket of a single user
type userLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// Buckets of users idle for an hour are evicted.
type RateLimiterMiddleware struct {
	limits     *cache.Cache
	create     sync.Mutex
	maxTokens  float64
	refillRate float64 // tokens per second
	logger     *zap.Logger
	bot        Sender
	now        func() time.Time
}

func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	bot Sender,
) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:     cache.New(inactiveUserTTL, 10*time.Minute),
		maxTokens:  float64(burstSize),
		refillRate: float64(requestsPerMinute) / 60.0,
		logger:     logger,
		bot:        bot,
		now:        time.Now,
	}
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateSource(update)
	if !ok {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	limit := rl.userLimit(userID)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens = min(rl.maxTokens, limit.tokens+elapsed*rl.refillRate)
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendWarning(chatID, limit.warningsSent)
	}

	return false
}

// userLimit returns the bucket of the user, creating a full one on first use
func (rl *RateLimiterMiddleware) userLimit(userID int64) *userLimit {
	key := strconv.FormatInt(userID, 10)

	rl.create.Lock()
	defer rl.create.Unlock()

	if v, ok := rl.limits.Get(key); ok {
		rl.limits.SetDefault(key, v)
		return v.(*userLimit)
	}

	limit := &userLimit{tokens: rl.maxTokens, lastRefill: rl.now()}
	rl.limits.SetDefault(key, limit)
	return limit
}

func (rl *RateLimiterMiddleware) sendWarning(chatID int64, warningCount int) {
	text := render.MsgRateLimited
	if warningCount > 1 {
		text = render.MsgRateLimitedAgain
	}

	if _, err := rl.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
