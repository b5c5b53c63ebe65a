package repository

import (
	"context"
	"testing"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterview(id string) *entity.InterviewSession {
	now := time.Now().UTC()
	return &entity.InterviewSession{
		ID:              id,
		RoleID:          "backend",
		ExperienceLevel: "senior",
		TechStack:       []string{"Go"},
		Status:          entity.SessionStatusActive,
		History:         []entity.QAExchange{exchange(0)},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestInterviewMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewMemory(time.Hour, time.Minute)

	require.NoError(t, repo.Create(ctx, newInterview("i1")))
	require.Error(t, repo.Create(ctx, newInterview("i1")))

	got, err := repo.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "backend", got.RoleID)
	assert.Equal(t, entity.SessionStatusActive, got.Status)
	assert.Nil(t, got.History)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestInterviewMemoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewMemory(time.Hour, time.Minute)
	require.NoError(t, repo.Create(ctx, newInterview("i1")))

	updated, err := repo.UpdateStatus(ctx, "i1", entity.SessionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, updated.Status)

	got, err := repo.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, got.Status)

	_, err = repo.UpdateStatus(ctx, "missing", entity.SessionStatusCompleted)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestInterviewMemoryArchive(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewMemory(time.Hour, time.Minute)
	require.NoError(t, repo.Create(ctx, newInterview("i1")))

	empty, err := repo.ArchivedHistory(ctx, "i1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	history := []entity.QAExchange{exchange(0), exchange(1)}
	require.NoError(t, repo.ArchiveHistory(ctx, "i1", history))
	history[0].AnswerText = "mutated"

	archived, err := repo.ArchivedHistory(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, archived, 2)
	assert.Equal(t, "a0", archived[0].AnswerText)
	assert.Equal(t, "q1", archived[1].QuestionText)

	assert.ErrorIs(t, repo.ArchiveHistory(ctx, "missing", history), entity.ErrSessionNotFound)
}
