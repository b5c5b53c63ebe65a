package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/telegram/handlers"
	"github.com/futig/interview-agent/internal/telegram/middleware"
	"github.com/futig/interview-agent/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot receives Telegram updates and routes them to the interview handler
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	interview   *handlers.InterviewHandler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewAPI authorizes the bot token against Telegram
func NewAPI(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return api, nil
}

func New(
	api *tgbotapi.BotAPI,
	cfg *config.TelegramConfig,
	interview *handlers.InterviewHandler,
	logger *zap.Logger,
) *Bot {
	return &Bot{
		api:         api,
		cfg:         cfg,
		interview:   interview,
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		stopChan:    make(chan struct{}),
	}
}

// Start begins long polling and processes updates in the background
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops polling and waits for in-flight updates up to the shutdown timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware runs rate limiting, logging and recovery around the handler
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				Dispatch(ctx, b.interview, u3, b.logger)
			})
		})
	})
}

// Dispatch routes a message update to the interview handler
func Dispatch(ctx context.Context, h *handlers.InterviewHandler, update tgbotapi.Update, logger *zap.Logger) {
	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.IsCommand() {
		msg.Command = message.Command()
		msg.Args = message.CommandArguments()
	}

	ctx = ctxzap.ToContext(ctx, logger.With(
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.UserID),
	))

	var err error
	switch msg.Command {
	case "":
		err = h.Answer(ctx, msg)
	case "start":
		err = h.Start(ctx, msg)
	case "finish":
		err = h.Finish(ctx, msg)
	case "help":
		err = h.Help(ctx, msg)
	default:
		_, err = h.Notify(msg.ChatID, render.MsgUnknownCommand)
	}

	if err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err), zap.String("command", msg.Command))
		if _, sendErr := h.Notify(msg.ChatID, render.ErrGeneric); sendErr != nil {
			ctxzap.Error(ctx, "failed to send error message", zap.Error(sendErr))
		}
	}
}
