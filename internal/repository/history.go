package repository

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
)

// HistoryStore keeps the ordered question/answer history of live interview sessions
type HistoryStore interface {
	// Append adds an exchange to the end of the session history, creating it on first use
	Append(ctx context.Context, sessionID string, exchange entity.QAExchange) error
	// Read returns a copy of the session history; unknown sessions yield an empty slice
	Read(ctx context.Context, sessionID string) ([]entity.QAExchange, error)
	// Delete drops the session history
	Delete(ctx context.Context, sessionID string) error
}

var (
	_ HistoryStore = &HistoryMemory{}
	_ HistoryStore = &HistoryRedis{}
)
