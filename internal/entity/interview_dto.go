package entity

import "time"

type StartInterviewRequest struct {
	RoleID          string            `json:"role_id"`
	ExperienceLevel string            `json:"experience_level"`
	TechStack       []string          `json:"tech_stack,omitempty"`
	Language        string            `json:"language,omitempty"`
	Candidate       *CandidateContext `json:"candidate,omitempty"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type SendMessageResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

type EvaluateAnswerRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type EvaluateRequest struct {
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	RoleID          string `json:"role_id"`
	ExperienceLevel string `json:"experience_level"`
}

type QAExchangeDTO struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Evaluation *EvaluationResult `json:"evaluation,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type InterviewSessionDTO struct {
	ID              string            `json:"session_id"`
	RoleID          string            `json:"role_id"`
	ExperienceLevel string            `json:"experience_level"`
	TechStack       []string          `json:"tech_stack,omitempty"`
	Language        string            `json:"language,omitempty"`
	Candidate       *CandidateContext `json:"candidate,omitempty"`
	Status          SessionStatus     `json:"status"`
	History         []QAExchangeDTO   `json:"history"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
