package evaluation

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/pkg/metrics"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Evaluation result sources reported to metrics
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// EvaluationUsecase scores a single interview answer with the LLM
type EvaluationUsecase struct {
	llmConnector LLMConnector
	prompts      PromptAssembler
}

func NewUsecase(llmConnector LLMConnector, prompts PromptAssembler) *EvaluationUsecase {
	return &EvaluationUsecase{
		llmConnector: llmConnector,
		prompts:      prompts,
	}
}

// Evaluate never fails: when the model is unreachable or its output cannot
// be parsed, the answer is scored by length instead.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, question, answer, roleID, level string) entity.EvaluationResult {
	ctx = logger.WithAction(ctx, "evaluate_answer")

	messages := []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: uc.prompts.BuildSystemPrompt(roleID, level, nil)},
		{Role: entity.ChatRoleUser, Content: uc.prompts.BuildEvaluationPrompt(question, answer, roleID, level)},
	}

	completion := uc.llmConnector.CompleteResult(ctx, messages)
	if completion.IsFallback() {
		ctxzap.Warn(ctx, "LLM unavailable, using length based evaluation",
			zap.String("failure", string(completion.Failure)),
		)
		return uc.fallback(answer)
	}

	result, err := ParseResult(completion.Text)
	if err != nil {
		ctxzap.Warn(ctx, "failed to parse evaluation, using length based evaluation",
			zap.Error(err),
			zap.Int("response_length", len(completion.Text)),
		)
		return uc.fallback(answer)
	}

	metrics.ObserveEvaluation(SourceModel, string(result.RubricLevel))
	ctxzap.Info(ctx, "answer evaluated",
		zap.Int("score", result.Score),
		zap.String("rubric_level", string(result.RubricLevel)),
	)

	return result
}

func (uc *EvaluationUsecase) fallback(answer string) entity.EvaluationResult {
	result := FallbackResult(answer)
	metrics.ObserveEvaluation(SourceFallback, string(result.RubricLevel))
	return result
}
