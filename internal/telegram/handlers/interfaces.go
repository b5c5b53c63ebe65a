package handlers

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type InterviewUsecase interface {
	StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.InterviewSession, error)
	SendMessage(ctx context.Context, sessionID, message string) (string, error)
	CompleteInterview(ctx context.Context, sessionID string) (*entity.InterviewSession, error)
}

// Sender is the subset of the Telegram Bot API used by the handlers
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Message is a normalized incoming Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Command   string
	Args      string
}
