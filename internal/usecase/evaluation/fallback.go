package evaluation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/futig/interview-agent/internal/entity"
)

// Answer length thresholds, in characters, of the length based evaluation
const (
	longAnswerLength   = 200
	mediumAnswerLength = 100
)

var (
	fallbackStrengths = []string{
		"Answered the question",
	}
	fallbackImprovements = []string{
		"Add concrete examples from real projects",
		"Explain the trade-offs behind the chosen approach",
	}
	fallbackFollowUps = []string{
		"Can you give a concrete example from your experience?",
		"What trade-offs did you consider?",
	}
)

// FallbackResult scores an answer by its length alone. It is used whenever
// the model's evaluation is unavailable and always satisfies the result ranges.
func FallbackResult(answer string) entity.EvaluationResult {
	length := utf8.RuneCountInString(strings.TrimSpace(answer))

	var (
		score, dimension int
		rubric           entity.RubricLevel
	)
	switch {
	case length > longAnswerLength:
		score, dimension, rubric = 70, 7, entity.RubricGood
	case length > mediumAnswerLength:
		score, dimension, rubric = 60, 6, entity.RubricAverage
	default:
		score, dimension, rubric = 50, 5, entity.RubricPoor
	}

	return entity.EvaluationResult{
		Score:             score,
		RubricLevel:       rubric,
		TechnicalAccuracy: dimension,
		Depth:             dimension,
		Experience:        dimension,
		Communication:     dimension,
		Strengths:         slices.Clone(fallbackStrengths),
		Improvements:      slices.Clone(fallbackImprovements),
		FollowUpQuestions: slices.Clone(fallbackFollowUps),
	}
}
