package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/futig/interview-agent/internal/entity"
)

var languageTag = regexp.MustCompile(`^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})*$`)

// Validator checks caller input before it reaches the interview use cases
type Validator struct {
	maxMessageLength int
}

func NewValidator(maxMessageLength int) *Validator {
	return &Validator{maxMessageLength: maxMessageLength}
}

// ValidateStartInterview validates StartInterviewRequest
func (v *Validator) ValidateStartInterview(req *entity.StartInterviewRequest) error {
	if strings.TrimSpace(req.RoleID) == "" {
		return fmt.Errorf("%w: role_id", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.ExperienceLevel) == "" {
		return fmt.Errorf("%w: experience_level", entity.ErrMissingField)
	}

	for i, tech := range req.TechStack {
		if strings.TrimSpace(tech) == "" {
			return fmt.Errorf("%w: tech_stack[%d] is empty", entity.ErrInvalidParameter, i)
		}
	}

	if lang := strings.TrimSpace(req.Language); lang != "" && !languageTag.MatchString(lang) {
		return fmt.Errorf("%w: language %q is not a locale tag", entity.ErrInvalidFormat, lang)
	}

	if req.Candidate != nil {
		return v.validateCandidate(req.Candidate)
	}

	return nil
}

// ValidateMessage validates a candidate message sent to a running interview
func (v *Validator) ValidateMessage(req *entity.SendMessageRequest) error {
	return v.validateText("message", req.Message)
}

// ValidateEvaluateAnswer validates an in-session evaluation request. An empty
// answer is allowed and scored as such.
func (v *Validator) ValidateEvaluateAnswer(req *entity.EvaluateAnswerRequest) error {
	if err := v.validateText("question", req.Question); err != nil {
		return err
	}
	return v.validateLength("answer", req.Answer)
}

// ValidateEvaluate validates a standalone evaluation request
func (v *Validator) ValidateEvaluate(req *entity.EvaluateRequest) error {
	if err := v.validateText("question", req.Question); err != nil {
		return err
	}
	if err := v.validateLength("answer", req.Answer); err != nil {
		return err
	}
	if strings.TrimSpace(req.RoleID) == "" {
		return fmt.Errorf("%w: role_id", entity.ErrMissingField)
	}
	return nil
}

func (v *Validator) validateCandidate(c *entity.CandidateContext) error {
	if c.YearsOfExperience != nil && (*c.YearsOfExperience < 0 || *c.YearsOfExperience > 70) {
		return fmt.Errorf("%w: candidate.years_of_experience must be between 0 and 70", entity.ErrInvalidParameter)
	}

	for i, w := range c.WorkExperience {
		if strings.TrimSpace(w.Role) == "" || strings.TrimSpace(w.Company) == "" {
			return fmt.Errorf("%w: candidate.work_experience[%d] needs role and company", entity.ErrMissingField, i)
		}
	}

	for i, p := range c.Projects {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: candidate.projects[%d].title", entity.ErrMissingField, i)
		}
	}

	return v.validateLength("candidate.resume_summary", c.ResumeSummary)
}

func (v *Validator) validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}
	return v.validateLength(field, text)
}

func (v *Validator) validateLength(field, text string) error {
	if n := utf8.RuneCountInString(text); n > v.maxMessageLength {
		return fmt.Errorf("%w: %s is %d characters (max %d)", entity.ErrInvalidParameter, field, n, v.maxMessageLength)
	}
	return nil
}
