package telegram

import (
	"context"
	"errors"

	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/pkg/validator"
	"github.com/futig/interview-agent/internal/telegram/bot"
	"github.com/futig/interview-agent/internal/telegram/handlers"
	"github.com/futig/interview-agent/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	sessionCfg config.SessionConfig,
	interviewUC handlers.InterviewUsecase,
	validator *validator.Validator,
	logger *zap.Logger,
) (Bot, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := bot.NewAPI(cfg.BotToken, logger)
	if err != nil {
		return nil, err
	}

	sessions := state.NewChatSessions(sessionCfg.TTL, sessionCfg.CleanupInterval)
	interviewHandler := handlers.NewInterviewHandler(api, interviewUC, sessions, validator, cfg, logger)

	logger.Info("telegram bot initialized successfully")

	return bot.New(api, cfg, interviewHandler, logger), nil
}
