package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interviewColumns = `id::text, role_id, experience_level, tech_stack, language, candidate, status, created_at, updated_at`

// InterviewPostgres implements InterviewRepository using PostgreSQL
type InterviewPostgres struct {
	db *pgxpool.Pool
}

func NewInterviewPostgres(db *pgxpool.Pool) *InterviewPostgres {
	return &InterviewPostgres{db: db}
}

func (r *InterviewPostgres) Create(ctx context.Context, session *entity.InterviewSession) error {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	candidate, err := marshalNullable(session.Candidate)
	if err != nil {
		return fmt.Errorf("marshal candidate: %w", err)
	}

	techStack := session.TechStack
	if techStack == nil {
		techStack = []string{}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO interviews (id, role_id, experience_level, tech_stack, language, candidate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, session.RoleID, session.ExperienceLevel, techStack, session.Language, candidate,
		string(session.Status), session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create interview: %w", err)
	}

	return nil
}

func (r *InterviewPostgres) Get(ctx context.Context, id string) (*entity.InterviewSession, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID %q", entity.ErrSessionNotFound, id)
	}

	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, sessionID)

	session, err := scanInterview(row)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}

	return session, nil
}

func (r *InterviewPostgres) UpdateStatus(ctx context.Context, id string, status entity.SessionStatus) (
	*entity.InterviewSession, error,
) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID %q", entity.ErrSessionNotFound, id)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE interviews SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+interviewColumns,
		sessionID, string(status),
	)

	session, err := scanInterview(row)
	if err != nil {
		return nil, fmt.Errorf("update interview status: %w", err)
	}

	return session, nil
}

// ArchiveHistory replaces the archived exchanges of the interview in one transaction
func (r *InterviewPostgres) ArchiveHistory(ctx context.Context, id string, history []entity.QAExchange) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid session ID %q", entity.ErrSessionNotFound, id)
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM interview_exchanges WHERE interview_id = $1`, sessionID); err != nil {
			return fmt.Errorf("clear archive: %w", err)
		}

		batch := &pgx.Batch{}
		for i, exchange := range history {
			evaluation, err := marshalNullable(exchange.Evaluation)
			if err != nil {
				return fmt.Errorf("marshal evaluation of exchange %d: %w", i, err)
			}
			batch.Queue(`
				INSERT INTO interview_exchanges (interview_id, position, question, answer, evaluation, occurred_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				sessionID, i, exchange.QuestionText, exchange.AnswerText, evaluation, exchange.OccurredAt,
			)
		}

		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("archive history: %w", err)
	}

	return nil
}

func (r *InterviewPostgres) ArchivedHistory(ctx context.Context, id string) ([]entity.QAExchange, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID %q", entity.ErrSessionNotFound, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT question, answer, evaluation, occurred_at
		FROM interview_exchanges
		WHERE interview_id = $1
		ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query archived history: %w", err)
	}
	defer rows.Close()

	history := make([]entity.QAExchange, 0)
	for rows.Next() {
		var (
			exchange   entity.QAExchange
			evaluation []byte
		)
		if err := rows.Scan(&exchange.QuestionText, &exchange.AnswerText, &evaluation, &exchange.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan archived exchange: %w", err)
		}
		if len(evaluation) > 0 {
			exchange.Evaluation = &entity.EvaluationResult{}
			if err := json.Unmarshal(evaluation, exchange.Evaluation); err != nil {
				return nil, fmt.Errorf("decode archived evaluation: %w", err)
			}
		}
		history = append(history, exchange)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived history: %w", err)
	}

	return history, nil
}

func scanInterview(row pgx.Row) (*entity.InterviewSession, error) {
	var (
		session   entity.InterviewSession
		status    string
		candidate []byte
	)

	err := row.Scan(
		&session.ID, &session.RoleID, &session.ExperienceLevel, &session.TechStack, &session.Language,
		&candidate, &status, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, err
	}

	session.Status = entity.SessionStatus(status)
	if len(candidate) > 0 {
		session.Candidate = &entity.CandidateContext{}
		if err := json.Unmarshal(candidate, session.Candidate); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
	}

	return &session, nil
}

// marshalNullable encodes v as JSON, mapping nil pointers to SQL NULL
func marshalNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
