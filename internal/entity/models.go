package entity

import (
	"fmt"
	"time"
)

type SessionStatus string

// Session status of an interview conversation
const (
	SessionStatusActive    SessionStatus = "active"    // Interview in progress, accepts messages
	SessionStatusCompleted SessionStatus = "completed" // Interview finished, history archived
)

func (s SessionStatus) Validate() error {
	switch s {
	case SessionStatusActive, SessionStatusCompleted:
		return nil
	default:
		return fmt.Errorf("unknown session status: %s", s)
	}
}

// WorkExperience is one entry of the candidate's employment history
type WorkExperience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// CandidateProject is one project the candidate has worked on
type CandidateProject struct {
	Title       string   `json:"title"`
	TechStack   []string `json:"tech_stack,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CandidateContext holds optional background about the interviewed person
type CandidateContext struct {
	Name              string             `json:"name,omitempty"`
	YearsOfExperience *int               `json:"years_of_experience,omitempty"`
	Education         string             `json:"education,omitempty"`
	ResumeSummary     string             `json:"resume_summary,omitempty"`
	Skills            []string           `json:"skills,omitempty"`
	WorkExperience    []WorkExperience   `json:"work_experience,omitempty"`
	Projects          []CandidateProject `json:"projects,omitempty"`
}

// IsEmpty reports whether the context carries nothing worth putting into a prompt
func (c *CandidateContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Name == "" && c.YearsOfExperience == nil && c.Education == "" && c.ResumeSummary == "" &&
		len(c.Skills) == 0 && len(c.WorkExperience) == 0 && len(c.Projects) == 0
}

// InterviewProfile is the externally supplied metadata the conversation is tailored to
type InterviewProfile struct {
	RoleID          string            `json:"role_id"`
	ExperienceLevel string            `json:"experience_level"`
	TechStack       []string          `json:"tech_stack,omitempty"`
	Language        string            `json:"language,omitempty"`
	Candidate       *CandidateContext `json:"candidate,omitempty"`
}

// QAExchange is one question/answer turn of a session
type QAExchange struct {
	QuestionText string            `json:"question"`
	AnswerText   string            `json:"answer"`
	Evaluation   *EvaluationResult `json:"evaluation,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
}

type InterviewSession struct {
	ID              string            `json:"session_id"`
	RoleID          string            `json:"role_id"`
	ExperienceLevel string            `json:"experience_level"`
	TechStack       []string          `json:"tech_stack,omitempty"`
	Language        string            `json:"language,omitempty"`
	Candidate       *CandidateContext `json:"candidate,omitempty"`
	History         []QAExchange      `json:"history"`
	Status          SessionStatus     `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Profile returns the prompt-relevant part of the session
func (s *InterviewSession) Profile() InterviewProfile {
	return InterviewProfile{
		RoleID:          s.RoleID,
		ExperienceLevel: s.ExperienceLevel,
		TechStack:       s.TechStack,
		Language:        s.Language,
		Candidate:       s.Candidate,
	}
}
