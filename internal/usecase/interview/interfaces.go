package interview

import (
	"context"
	"iter"

	"github.com/futig/interview-agent/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) string
	CompleteStream(ctx context.Context, messages []entity.ChatMessage) iter.Seq[string]
}

type PromptAssembler interface {
	BuildSessionPrompt(profile entity.InterviewProfile) string
	BuildHistoryPrompt(history []entity.QAExchange, k int) string
}

type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, roleID, level string) entity.EvaluationResult
}
