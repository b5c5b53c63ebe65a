package llm

import (
	"context"
	"iter"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers every call from the local fallback responder without
// any network traffic
type MockConnector struct {
	wordDelay time.Duration
	logger    *zap.Logger
}

func NewMockConnector(wordDelay time.Duration, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		wordDelay: wordDelay,
		logger:    logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) string {
	return m.CompleteResult(ctx, messages).Text
}

func (m *MockConnector) CompleteResult(ctx context.Context, messages []entity.ChatMessage) entity.Completion {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.Int("message_count", len(messages)))

	return entity.Completion{
		Text:   Respond(entity.LastUserMessage(messages)),
		Source: entity.CompletionSourceFallback,
	}
}

func (m *MockConnector) CompleteStream(ctx context.Context, messages []entity.ChatMessage) iter.Seq[string] {
	return func(yield func(string) bool) {
		ctxzap.Info(ctx, "[MOCK] streaming completion", zap.Int("message_count", len(messages)))
		streamWords(ctx, Respond(entity.LastUserMessage(messages)), m.wordDelay, yield)
	}
}
