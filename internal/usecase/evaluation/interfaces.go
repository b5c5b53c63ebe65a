package evaluation

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
)

type LLMConnector interface {
	CompleteResult(ctx context.Context, messages []entity.ChatMessage) entity.Completion
}

type PromptAssembler interface {
	BuildSystemPrompt(roleID, level string, candidate *entity.CandidateContext) string
	BuildEvaluationPrompt(question, answer, roleID, level string) string
}
