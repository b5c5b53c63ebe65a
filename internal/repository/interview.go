package repository

import (
	"context"

	"github.com/futig/interview-agent/internal/entity"
)

// InterviewRepository persists interview metadata and the archived history of completed interviews
type InterviewRepository interface {
	Create(ctx context.Context, session *entity.InterviewSession) error
	Get(ctx context.Context, id string) (*entity.InterviewSession, error)
	UpdateStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.InterviewSession, error)
	ArchiveHistory(ctx context.Context, id string, history []entity.QAExchange) error
	ArchivedHistory(ctx context.Context, id string) ([]entity.QAExchange, error)
}

var (
	_ InterviewRepository = &InterviewPostgres{}
	_ InterviewRepository = &InterviewMemory{}
)
