package interview

import "github.com/futig/interview-agent/internal/entity"

// toInterviewDTO converts InterviewSession entity to InterviewSessionDTO
func toInterviewDTO(session *entity.InterviewSession) *entity.InterviewSessionDTO {
	history := make([]entity.QAExchangeDTO, 0, len(session.History))
	for _, exchange := range session.History {
		history = append(history, entity.QAExchangeDTO{
			Question:   exchange.QuestionText,
			Answer:     exchange.AnswerText,
			Evaluation: exchange.Evaluation,
			OccurredAt: exchange.OccurredAt,
		})
	}

	return &entity.InterviewSessionDTO{
		ID:              session.ID,
		RoleID:          session.RoleID,
		ExperienceLevel: session.ExperienceLevel,
		TechStack:       session.TechStack,
		Language:        session.Language,
		Candidate:       session.Candidate,
		Status:          session.Status,
		History:         history,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
