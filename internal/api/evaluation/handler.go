package evaluation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/pkg/response"
	"github.com/futig/interview-agent/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   EvaluationUsecase
	validator *validator.Validator
}

func NewHandler(usecase EvaluationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Evaluate handles POST /evaluation - Score an answer outside of any interview
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluate")

	var req entity.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateEvaluate(&req); err != nil {
		h.badRequest(w, r, "validation failed", err)
		return
	}

	result := h.usecase.Evaluate(ctx, req.Question, req.Answer, req.RoleID, req.ExperienceLevel)

	response.Success(w, result)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, message string, err error) {
	ctxzap.Warn(r.Context(), message, zap.Error(err))
	response.Error(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", message, err))
}
