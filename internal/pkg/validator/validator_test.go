package validator

import (
	"strings"
	"testing"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidateStartInterview(t *testing.T) {
	v := NewValidator(100)

	tests := []struct {
		name    string
		req     entity.StartInterviewRequest
		wantErr error
	}{
		{
			name: "minimal",
			req:  entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior"},
		},
		{
			name: "full",
			req: entity.StartInterviewRequest{
				RoleID: "devops", ExperienceLevel: "mid", TechStack: []string{"Kubernetes"}, Language: "pt-BR",
				Candidate: &entity.CandidateContext{
					YearsOfExperience: intPtr(4),
					WorkExperience:    []entity.WorkExperience{{Role: "SRE", Company: "Acme"}},
					Projects:          []entity.CandidateProject{{Title: "Autoscaler"}},
				},
			},
		},
		{
			name:    "missing role",
			req:     entity.StartInterviewRequest{ExperienceLevel: "senior"},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "blank level",
			req:     entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "  "},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "empty tech",
			req:     entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior", TechStack: []string{"Go", ""}},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name:    "bad language",
			req:     entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior", Language: "english please"},
			wantErr: entity.ErrInvalidFormat,
		},
		{
			name: "negative years",
			req: entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior",
				Candidate: &entity.CandidateContext{YearsOfExperience: intPtr(-1)}},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "work experience without company",
			req: entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior",
				Candidate: &entity.CandidateContext{WorkExperience: []entity.WorkExperience{{Role: "Dev"}}}},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "untitled project",
			req: entity.StartInterviewRequest{RoleID: "backend", ExperienceLevel: "senior",
				Candidate: &entity.CandidateContext{Projects: []entity.CandidateProject{{Description: "x"}}}},
			wantErr: entity.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStartInterview(&tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateMessage(t *testing.T) {
	v := NewValidator(10)

	assert.NoError(t, v.ValidateMessage(&entity.SendMessageRequest{Message: "hello"}))
	assert.NoError(t, v.ValidateMessage(&entity.SendMessageRequest{Message: strings.Repeat("ж", 10)}))
	assert.ErrorIs(t, v.ValidateMessage(&entity.SendMessageRequest{Message: " \n "}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateMessage(&entity.SendMessageRequest{Message: strings.Repeat("a", 11)}), entity.ErrInvalidParameter)
}

func TestValidateEvaluate(t *testing.T) {
	v := NewValidator(50)

	assert.NoError(t, v.ValidateEvaluateAnswer(&entity.EvaluateAnswerRequest{Question: "Why?", Answer: ""}))
	assert.ErrorIs(t, v.ValidateEvaluateAnswer(&entity.EvaluateAnswerRequest{Answer: "because"}), entity.ErrMissingField)

	assert.NoError(t, v.ValidateEvaluate(&entity.EvaluateRequest{Question: "Why?", RoleID: "backend"}))
	assert.ErrorIs(t, v.ValidateEvaluate(&entity.EvaluateRequest{Question: "Why?"}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateEvaluate(&entity.EvaluateRequest{
		Question: "Why?", RoleID: "backend", Answer: strings.Repeat("a", 51),
	}), entity.ErrInvalidParameter)
}
