package interview

import (
	"context"
	"iter"

	"github.com/futig/interview-agent/internal/entity"
)

type InterviewUsecase interface {
	StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.InterviewSession, error)
	GetInterview(ctx context.Context, sessionID string) (*entity.InterviewSession, error)
	SendMessage(ctx context.Context, sessionID, message string) (string, error)
	SendMessageStream(ctx context.Context, sessionID, message string) (iter.Seq[string], error)
	EvaluateSessionAnswer(ctx context.Context, sessionID, question, answer string) (entity.EvaluationResult, error)
	CompleteInterview(ctx context.Context, sessionID string) (*entity.InterviewSession, error)
}
