package repository

import (
	"context"
	"sync"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/patrickmn/go-cache"
)

const archivePrefix = "archive:"

// InterviewMemory keeps interview metadata in process; used when no database is configured
type InterviewMemory struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewInterviewMemory(ttl, cleanupInterval time.Duration) *InterviewMemory {
	return &InterviewMemory{
		items: cache.New(ttl, cleanupInterval),
	}
}

func (r *InterviewMemory) Create(_ context.Context, session *entity.InterviewSession) error {
	stored := *session
	stored.History = nil

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.items.Add(session.ID, &stored, cache.DefaultExpiration)
}

func (r *InterviewMemory) Get(_ context.Context, id string) (*entity.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	session := *v.(*entity.InterviewSession)
	return &session, nil
}

func (r *InterviewMemory) UpdateStatus(_ context.Context, id string, status entity.SessionStatus) (
	*entity.InterviewSession, error,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	updated := *v.(*entity.InterviewSession)
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()
	r.items.SetDefault(id, &updated)

	session := updated
	return &session, nil
}

func (r *InterviewMemory) ArchiveHistory(_ context.Context, id string, history []entity.QAExchange) error {
	archived := make([]entity.QAExchange, len(history))
	copy(archived, history)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items.Get(id); !ok {
		return entity.ErrSessionNotFound
	}
	r.items.SetDefault(archivePrefix+id, archived)

	return nil
}

func (r *InterviewMemory) ArchivedHistory(_ context.Context, id string) ([]entity.QAExchange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items.Get(archivePrefix + id)
	if !ok {
		return []entity.QAExchange{}, nil
	}

	archived := v.([]entity.QAExchange)
	history := make([]entity.QAExchange, len(archived))
	copy(history, archived)

	return history, nil
}
