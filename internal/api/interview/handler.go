package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/pkg/response"
	"github.com/futig/interview-agent/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartInterview handles POST /interview-session - Start new interview
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	var req entity.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartInterview(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.StartInterview(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toInterviewDTO(session))
}

// GetInterview handles GET /interview-session/{id} - Get interview with history
func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "GetInterview"), sessionID)

	ctxzap.Debug(ctx, "fetching interview")

	session, err := h.usecase.GetInterview(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(session))
}

// SendMessage handles POST /interview-session/{id}/message - Reply to a candidate message
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "SendMessage"), sessionID)

	req, ok := h.decodeMessage(ctx, w, r)
	if !ok {
		return
	}

	reply, err := h.usecase.SendMessage(ctx, sessionID, req.Message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.SendMessageResponse{
		SessionID: sessionID,
		Response:  reply,
	})
}

// StreamMessage handles POST /interview-session/{id}/message/stream - Stream the reply as Server-Sent Events
func (h *Handler) StreamMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "StreamMessage"), sessionID)

	req, ok := h.decodeMessage(ctx, w, r)
	if !ok {
		return
	}

	stream, err := h.usecase.SendMessageStream(ctx, sessionID, req.Message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	events := response.NewEventStream(w)
	fragments := 0
	for fragment := range stream {
		if err := events.Send(fragment); err != nil {
			ctxzap.Warn(ctx, "client went away during stream", zap.Int("fragments", fragments), zap.Error(err))
			return
		}
		fragments++
	}

	if err := events.Done(); err != nil {
		ctxzap.Warn(ctx, "failed to finish stream", zap.Error(err))
	}
}

// EvaluateAnswer handles POST /interview-session/{id}/evaluate - Score an answer within the interview
func (h *Handler) EvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "EvaluateAnswer"), sessionID)

	var req entity.EvaluateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateEvaluateAnswer(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	result, err := h.usecase.EvaluateSessionAnswer(ctx, sessionID, req.Question, req.Answer)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// CompleteInterview handles POST /interview-session/{id}/complete - Finish the interview
func (h *Handler) CompleteInterview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "CompleteInterview"), sessionID)

	session, err := h.usecase.CompleteInterview(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(session))
}

func (h *Handler) decodeMessage(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.SendMessageRequest, bool) {
	var req entity.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}

	if err := h.validator.ValidateMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return nil, false
	}

	return &req, true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		// internal details stay in the log
		ctxzap.Error(ctx, message, zap.Error(err))
		response.Error(w, status, message)
		return
	}

	ctxzap.Warn(ctx, message, zap.Error(err))
	response.Error(w, status, fmt.Sprintf("%s: %v", message, err))
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "interview not found", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrInvalidFormat), errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrSessionCompleted):
		h.respondError(ctx, w, http.StatusConflict, "invalid interview state", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
