package interview

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/pkg/logger"
	"github.com/futig/interview-agent/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase drives interview conversations: it assembles prompts from
// the session profile and history, asks the LLM for the next interviewer
// message and records every exchange.
type InterviewUsecase struct {
	interviewRepo repository.InterviewRepository
	historyStore  repository.HistoryStore
	llmConnector  LLMConnector
	prompts       PromptAssembler
	evaluator     Evaluator
	historyWindow int
}

func NewUsecase(
	interviewRepo repository.InterviewRepository,
	historyStore repository.HistoryStore,
	llmConnector LLMConnector,
	prompts PromptAssembler,
	evaluator Evaluator,
	historyWindow int,
) *InterviewUsecase {
	return &InterviewUsecase{
		interviewRepo: interviewRepo,
		historyStore:  historyStore,
		llmConnector:  llmConnector,
		prompts:       prompts,
		evaluator:     evaluator,
		historyWindow: historyWindow,
	}
}

// NextResponse produces the interviewer's reply to userMessage and records
// the exchange. Only the history store can make it fail: the LLM connector
// always answers.
func (uc *InterviewUsecase) NextResponse(
	ctx context.Context,
	sessionID string,
	profile entity.InterviewProfile,
	userMessage string,
) (string, error) {
	ctx = logger.WithSession(logger.WithAction(ctx, "next_response"), sessionID)

	messages, err := uc.buildMessages(ctx, sessionID, profile, userMessage)
	if err != nil {
		return "", err
	}

	response := uc.llmConnector.Complete(ctx, messages)

	err = uc.RecordExchange(ctx, sessionID, entity.QAExchange{
		QuestionText: userMessage,
		AnswerText:   response,
	})
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "interviewer response generated", zap.Int("response_length", len(response)))

	return response, nil
}

// NextResponseStream is the streaming form of NextResponse. The exchange is
// recorded once the stream has been consumed to the end; a stream abandoned
// by its consumer records nothing.
func (uc *InterviewUsecase) NextResponseStream(
	ctx context.Context,
	sessionID string,
	profile entity.InterviewProfile,
	userMessage string,
) (iter.Seq[string], error) {
	ctx = logger.WithSession(logger.WithAction(ctx, "next_response_stream"), sessionID)

	messages, err := uc.buildMessages(ctx, sessionID, profile, userMessage)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		var response strings.Builder
		for fragment := range uc.llmConnector.CompleteStream(ctx, messages) {
			response.WriteString(fragment)
			if !yield(fragment) {
				ctxzap.Info(ctx, "response stream abandoned", zap.Int("delivered_length", response.Len()))
				return
			}
		}

		if ctx.Err() != nil {
			ctxzap.Info(ctx, "response stream cancelled", zap.Error(ctx.Err()))
			return
		}

		err := uc.RecordExchange(ctx, sessionID, entity.QAExchange{
			QuestionText: userMessage,
			AnswerText:   response.String(),
		})
		if err != nil {
			ctxzap.Error(ctx, "failed to record streamed exchange", zap.Error(err))
			return
		}

		ctxzap.Info(ctx, "interviewer response streamed", zap.Int("response_length", response.Len()))
	}, nil
}

// RecordExchange appends an exchange to the session history
func (uc *InterviewUsecase) RecordExchange(ctx context.Context, sessionID string, exchange entity.QAExchange) error {
	if exchange.OccurredAt.IsZero() {
		exchange.OccurredAt = time.Now().UTC()
	}

	if err := uc.historyStore.Append(ctx, sessionID, exchange); err != nil {
		return fmt.Errorf("record exchange: %w", err)
	}

	return nil
}

// EvaluateAnswer scores an answer and records it, with its evaluation, in the session history
func (uc *InterviewUsecase) EvaluateAnswer(
	ctx context.Context,
	sessionID string,
	profile entity.InterviewProfile,
	question, answer string,
) (entity.EvaluationResult, error) {
	ctx = logger.WithSession(logger.WithAction(ctx, "evaluate_answer"), sessionID)

	result := uc.evaluator.Evaluate(ctx, question, answer, profile.RoleID, profile.ExperienceLevel)

	err := uc.RecordExchange(ctx, sessionID, entity.QAExchange{
		QuestionText: question,
		AnswerText:   answer,
		Evaluation:   &result,
	})
	if err != nil {
		return entity.EvaluationResult{}, err
	}

	return result, nil
}

// StartInterview registers a new active interview
func (uc *InterviewUsecase) StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.InterviewSession, error) {
	now := time.Now().UTC()
	session := &entity.InterviewSession{
		ID:              uuid.New().String(),
		RoleID:          strings.TrimSpace(req.RoleID),
		ExperienceLevel: strings.TrimSpace(req.ExperienceLevel),
		TechStack:       req.TechStack,
		Language:        strings.TrimSpace(req.Language),
		Candidate:       req.Candidate,
		History:         []entity.QAExchange{},
		Status:          entity.SessionStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.interviewRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	ctxzap.Info(ctx, "interview started",
		zap.String("session_id", session.ID),
		zap.String("role_id", session.RoleID),
		zap.String("experience_level", session.ExperienceLevel),
	)

	return session, nil
}

// GetInterview returns the interview with its history: the live one while
// active, the archived one once completed
func (uc *InterviewUsecase) GetInterview(ctx context.Context, sessionID string) (*entity.InterviewSession, error) {
	session, err := uc.interviewRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}

	var history []entity.QAExchange
	if session.Status == entity.SessionStatusCompleted {
		history, err = uc.interviewRepo.ArchivedHistory(ctx, sessionID)
	} else {
		history, err = uc.historyStore.Read(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	session.History = history
	return session, nil
}

// CompleteInterview archives the live history and closes the interview
func (uc *InterviewUsecase) CompleteInterview(ctx context.Context, sessionID string) (*entity.InterviewSession, error) {
	ctx = logger.WithSession(logger.WithAction(ctx, "complete_interview"), sessionID)

	if _, err := uc.activeSession(ctx, sessionID); err != nil {
		return nil, err
	}

	history, err := uc.historyStore.Read(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if err := uc.interviewRepo.ArchiveHistory(ctx, sessionID, history); err != nil {
		return nil, fmt.Errorf("archive history: %w", err)
	}

	session, err := uc.interviewRepo.UpdateStatus(ctx, sessionID, entity.SessionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("update interview status: %w", err)
	}

	if err := uc.historyStore.Delete(ctx, sessionID); err != nil {
		ctxzap.Warn(ctx, "failed to drop live history", zap.Error(err))
	}

	ctxzap.Info(ctx, "interview completed", zap.Int("exchanges", len(history)))

	session.History = history
	return session, nil
}

// SendMessage answers a message within a registered active interview
func (uc *InterviewUsecase) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	session, err := uc.activeSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return uc.NextResponse(ctx, sessionID, session.Profile(), message)
}

// SendMessageStream is SendMessage with a streamed reply
func (uc *InterviewUsecase) SendMessageStream(ctx context.Context, sessionID, message string) (iter.Seq[string], error) {
	session, err := uc.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return uc.NextResponseStream(ctx, sessionID, session.Profile(), message)
}

// EvaluateSessionAnswer evaluates an answer against the profile of a registered active interview
func (uc *InterviewUsecase) EvaluateSessionAnswer(
	ctx context.Context,
	sessionID, question, answer string,
) (entity.EvaluationResult, error) {
	session, err := uc.activeSession(ctx, sessionID)
	if err != nil {
		return entity.EvaluationResult{}, err
	}

	return uc.EvaluateAnswer(ctx, sessionID, session.Profile(), question, answer)
}

func (uc *InterviewUsecase) activeSession(ctx context.Context, sessionID string) (*entity.InterviewSession, error) {
	session, err := uc.interviewRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}

	if session.Status != entity.SessionStatusActive {
		return nil, fmt.Errorf("interview %s: %w", sessionID, entity.ErrSessionCompleted)
	}

	return session, nil
}

// buildMessages assembles the system, history and user messages of one turn
func (uc *InterviewUsecase) buildMessages(
	ctx context.Context,
	sessionID string,
	profile entity.InterviewProfile,
	userMessage string,
) ([]entity.ChatMessage, error) {
	history, err := uc.historyStore.Read(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: uc.prompts.BuildSessionPrompt(profile)},
		{Role: entity.ChatRoleSystem, Content: uc.prompts.BuildHistoryPrompt(history, uc.historyWindow)},
		{Role: entity.ChatRoleUser, Content: userMessage},
	}, nil
}
