package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/pkg/validator"
	"github.com/futig/interview-agent/internal/telegram/render"
	"github.com/futig/interview-agent/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// kickoffMessage is sent on the candidate's behalf so the interviewer opens the conversation
const kickoffMessage = "Hello! I'm ready to start the interview."

// InterviewHandler runs one interview per chat
type InterviewHandler struct {
	bot       Sender
	usecase   InterviewUsecase
	sessions  *state.ChatSessions
	validator *validator.Validator
	cfg       *config.TelegramConfig
	logger    *zap.Logger
}

func NewInterviewHandler(
	bot Sender,
	usecase InterviewUsecase,
	sessions *state.ChatSessions,
	validator *validator.Validator,
	cfg *config.TelegramConfig,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		bot:       bot,
		usecase:   usecase,
		sessions:  sessions,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start handles /start [role] [level]: opens a new interview bound to the chat
func (h *InterviewHandler) Start(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "telegram_start")

	req := &entity.StartInterviewRequest{
		RoleID:          h.cfg.DefaultRole,
		ExperienceLevel: h.cfg.DefaultLevel,
		Language:        h.cfg.DefaultLanguage,
	}
	args := strings.Fields(msg.Args)
	if len(args) > 0 {
		req.RoleID = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		req.ExperienceLevel = strings.ToLower(args[1])
	}

	if err := h.validator.ValidateStartInterview(req); err != nil {
		return h.send(msg.ChatID, render.MsgHelp)
	}

	session, err := h.usecase.StartInterview(ctx, req)
	if err != nil {
		return err
	}
	h.sessions.Bind(msg.ChatID, session.ID)

	ctx = logger.WithSession(ctx, session.ID)
	ctxzap.Info(ctx, "telegram interview started", zap.Int64("chat_id", msg.ChatID))

	if err := h.send(msg.ChatID, render.InterviewStarted(session)); err != nil {
		return err
	}

	return h.reply(ctx, msg.ChatID, session.ID, kickoffMessage)
}

// Answer handles a plain text message of a running interview
func (h *InterviewHandler) Answer(ctx context.Context, msg *Message) error {
	sessionID, ok := h.sessions.Lookup(msg.ChatID)
	if !ok {
		return h.send(msg.ChatID, render.MsgNoInterview)
	}
	ctx = logger.WithSession(logger.WithAction(ctx, "telegram_answer"), sessionID)

	if strings.TrimSpace(msg.Text) == "" {
		return h.send(msg.ChatID, render.MsgTextOnly)
	}

	req := &entity.SendMessageRequest{Message: msg.Text}
	if err := h.validator.ValidateMessage(req); err != nil {
		return h.send(msg.ChatID, err.Error())
	}

	return h.reply(ctx, msg.ChatID, sessionID, req.Message)
}

// Finish handles /finish: completes the running interview and sends a summary
func (h *InterviewHandler) Finish(ctx context.Context, msg *Message) error {
	sessionID, ok := h.sessions.Lookup(msg.ChatID)
	if !ok {
		return h.send(msg.ChatID, render.MsgNoInterview)
	}
	ctx = logger.WithSession(logger.WithAction(ctx, "telegram_finish"), sessionID)

	session, err := h.usecase.CompleteInterview(ctx, sessionID)
	h.sessions.Unbind(msg.ChatID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionCompleted) || errors.Is(err, entity.ErrSessionNotFound) {
			return h.send(msg.ChatID, render.MsgInterviewClosed)
		}
		return err
	}

	return h.send(msg.ChatID, render.InterviewSummary(session))
}

// Help handles /help
func (h *InterviewHandler) Help(_ context.Context, msg *Message) error {
	return h.send(msg.ChatID, render.MsgHelp)
}

// reply asks the interviewer for the next message and delivers it to the chat
func (h *InterviewHandler) reply(ctx context.Context, chatID int64, sessionID, text string) error {
	typing := NewTypingNotifier(h.bot, chatID, h.logger)
	typing.Start(ctx)
	response, err := h.usecase.SendMessage(ctx, sessionID, text)
	typing.Stop()

	if err != nil {
		if errors.Is(err, entity.ErrSessionCompleted) || errors.Is(err, entity.ErrSessionNotFound) {
			h.sessions.Unbind(chatID)
			return h.send(chatID, render.MsgInterviewClosed)
		}
		return err
	}

	return h.send(chatID, response)
}

// Notify sends a plain notice to the chat
func (h *InterviewHandler) Notify(chatID int64, text string) (tgbotapi.Message, error) {
	return h.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (h *InterviewHandler) send(chatID int64, text string) error {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}
	return nil
}
