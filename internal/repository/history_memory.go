package repository

import (
	"context"
	"sync"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/patrickmn/go-cache"
)

type historyBucket struct {
	mu    sync.RWMutex
	items []entity.QAExchange
}

// HistoryMemory is an in-process HistoryStore. Every session owns its own
// bucket lock, so appends to different sessions never wait on each other.
// Buckets expire after ttl without appends.
type HistoryMemory struct {
	buckets *cache.Cache
}

func NewHistoryMemory(ttl, cleanupInterval time.Duration) *HistoryMemory {
	return &HistoryMemory{
		buckets: cache.New(ttl, cleanupInterval),
	}
}

func (s *HistoryMemory) Append(_ context.Context, sessionID string, exchange entity.QAExchange) error {
	b := s.bucket(sessionID)

	b.mu.Lock()
	b.items = append(b.items, exchange)
	b.mu.Unlock()

	// sliding expiration
	s.buckets.Set(sessionID, b, cache.DefaultExpiration)

	return nil
}

func (s *HistoryMemory) Read(_ context.Context, sessionID string) ([]entity.QAExchange, error) {
	v, ok := s.buckets.Get(sessionID)
	if !ok {
		return []entity.QAExchange{}, nil
	}
	b := v.(*historyBucket)

	b.mu.RLock()
	defer b.mu.RUnlock()

	history := make([]entity.QAExchange, len(b.items))
	copy(history, b.items)

	return history, nil
}

func (s *HistoryMemory) Delete(_ context.Context, sessionID string) error {
	s.buckets.Delete(sessionID)
	return nil
}

// bucket returns the session bucket, creating it if needed
func (s *HistoryMemory) bucket(sessionID string) *historyBucket {
	for {
		if v, ok := s.buckets.Get(sessionID); ok {
			return v.(*historyBucket)
		}

		b := &historyBucket{}
		if err := s.buckets.Add(sessionID, b, cache.DefaultExpiration); err == nil {
			return b
		}
		// another goroutine created it first
	}
}
