package evaluation

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
)

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, question, answer, roleID, level string) entity.EvaluationResult
}
