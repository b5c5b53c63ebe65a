package prompt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()

	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewAssembler(catalog)
}

func makeHistory(n int) []entity.QAExchange {
	history := make([]entity.QAExchange, n)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := range history {
		history[i] = entity.QAExchange{
			QuestionText: fmt.Sprintf("question-%02d", i+1),
			AnswerText:   fmt.Sprintf("answer-%02d", i+1),
			OccurredAt:   base.Add(time.Duration(i) * time.Minute),
		}
	}
	return history
}

func TestBuildSystemPromptKnownRoleAndLevel(t *testing.T) {
	a := newTestAssembler(t)

	got := a.BuildSystemPrompt("backend", "senior", nil)

	assert.True(t, strings.HasPrefix(got, basePrompt))
	assert.Contains(t, got, "Role: Backend Developer")
	assert.Contains(t, got, "Focus areas:\n- API design")
	assert.Contains(t, got, "Level expectations: Designs systems under load")
	assert.Contains(t, got, "Questioning style:")
	assert.NotContains(t, got, "Candidate background")
	assert.NotContains(t, got, genericRoleInstruction)
}

func TestBuildSystemPromptUnknownLevelSkipsLevelBlock(t *testing.T) {
	got := newTestAssembler(t).BuildSystemPrompt("frontend", "wizard", nil)

	assert.Contains(t, got, "Role: Frontend Developer")
	assert.NotContains(t, got, "Level expectations")
}

func TestBuildSystemPromptUnknownRoleFallsBack(t *testing.T) {
	got := newTestAssembler(t).BuildSystemPrompt("astronaut", "senior", nil)

	assert.Contains(t, got, genericRoleInstruction)
	assert.NotContains(t, got, "Role:")
}

func TestBuildSystemPromptCandidateBlock(t *testing.T) {
	years := 6
	candidate := &entity.CandidateContext{
		Name:              "Alex",
		YearsOfExperience: &years,
		Skills:            []string{"Go", " ", "PostgreSQL"},
		WorkExperience: []entity.WorkExperience{
			{Role: "Backend Engineer", Company: "Acme", Duration: "2019-2023", Description: "payments platform"},
			{Role: "Intern", Company: "Initech"},
		},
		Projects: []entity.CandidateProject{
			{Title: "Ledger", TechStack: []string{"Go", "Kafka"}, Description: "double-entry ledger"},
		},
	}

	got := newTestAssembler(t).BuildSystemPrompt("backend", "middle", candidate)

	roleIdx := strings.Index(got, "Role: Backend Developer")
	candidateIdx := strings.Index(got, "Candidate background:")
	require.Positive(t, roleIdx)
	require.Greater(t, candidateIdx, roleIdx)

	assert.Contains(t, got, "Years of experience: 6")
	assert.Contains(t, got, "Skills: Go, PostgreSQL")
	assert.Contains(t, got, "- Backend Engineer @ Acme (2019-2023): payments platform")
	assert.Contains(t, got, "- Intern @ Initech\n")
	assert.Contains(t, got, "- Ledger — Go, Kafka — double-entry ledger")
	assert.True(t, strings.HasSuffix(got, tailorInstruction))
}

func TestBuildSessionPrompt(t *testing.T) {
	got := newTestAssembler(t).BuildSessionPrompt(entity.InterviewProfile{
		RoleID:          "devops",
		ExperienceLevel: "junior",
		TechStack:       []string{"Kubernetes", "Terraform"},
		Language:        "ru",
	})

	assert.Contains(t, got, "Role: DevOps Engineer")
	assert.Contains(t, got, "Tech stack to focus on: Kubernetes, Terraform.")
	assert.Contains(t, got, `locale tag "ru"`)
}

func TestBuildHistoryPromptEmpty(t *testing.T) {
	assert.Equal(t, openingInstruction, newTestAssembler(t).BuildHistoryPrompt(nil, 5))
}

func TestBuildHistoryPromptWindow(t *testing.T) {
	a := newTestAssembler(t)

	for _, tc := range []struct{ total, k int }{{1, 5}, {5, 5}, {12, 5}, {30, 3}, {4, 1}} {
		t.Run(fmt.Sprintf("total=%d/k=%d", tc.total, tc.k), func(t *testing.T) {
			history := makeHistory(tc.total)
			got := a.BuildHistoryPrompt(history, tc.k)

			folded := min(tc.total, tc.k)
			assert.Equal(t, folded, strings.Count(got, "Question: "))

			// only the most recent exchanges, in chronological order
			last := -1
			for i, ex := range history {
				idx := strings.Index(got, "Question: "+ex.QuestionText+"\n")
				if i < tc.total-folded {
					assert.Equal(t, -1, idx, "old exchange %d must not be folded", i+1)
					continue
				}
				require.NotEqual(t, -1, idx)
				assert.Greater(t, idx, last)
				last = idx
			}

			assert.Contains(t, got, fmt.Sprintf("Round %d:", tc.total))
			assert.True(t, strings.HasSuffix(got, continueInstruction))
		})
	}
}

func TestBuildHistoryPromptShowsEvaluation(t *testing.T) {
	history := makeHistory(2)
	history[1].Evaluation = &entity.EvaluationResult{Score: 72, RubricLevel: entity.RubricGood}

	got := newTestAssembler(t).BuildHistoryPrompt(history, 5)

	assert.Contains(t, got, "Answer: answer-02\nEvaluation: good (score 72/100)")
	assert.Equal(t, 1, strings.Count(got, "Evaluation:"))
}

func TestWindow(t *testing.T) {
	history := makeHistory(4)

	assert.Nil(t, Window(history, 0))
	assert.Equal(t, history[2:], Window(history, 2))
	assert.Equal(t, history, Window(history, 10))
}

func TestBuildEvaluationPrompt(t *testing.T) {
	got := newTestAssembler(t).BuildEvaluationPrompt("What is a mutex?", "", "backend", "sr")

	assert.Contains(t, got, "role Backend Developer at senior level")
	assert.Contains(t, got, "Question: What is a mutex?")
	assert.Contains(t, got, "Candidate answer: (no answer given)")
	for _, field := range []string{"score", "rubricLevel", "technicalAccuracy", "depth", "experience", "communication", "strengths", "improvements", "followUpQuestions"} {
		assert.Contains(t, got, `"`+field+`"`)
	}
	assert.Contains(t, got, "0 to 100")
	assert.Contains(t, got, "0 to 10")
	assert.Contains(t, got, "no prose")
}
