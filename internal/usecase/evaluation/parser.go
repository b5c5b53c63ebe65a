package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/futig/interview-agent/internal/entity"
)

var (
	errNoJSONObject = errors.New("no JSON object in model output")
	errMissingScore = errors.New("evaluation has no score")
)

// rawResult mirrors entity.EvaluationResult with optional, loosely typed numbers
type rawResult struct {
	Score             *float64 `json:"score"`
	RubricLevel       string   `json:"rubricLevel"`
	TechnicalAccuracy float64  `json:"technicalAccuracy"`
	Depth             float64  `json:"depth"`
	Experience        float64  `json:"experience"`
	Communication     float64  `json:"communication"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	FollowUpQuestions []string `json:"followUpQuestions"`
}

// ParseResult extracts the text between the first '{' and the last '}' of
// the model output and decodes it into a normalized EvaluationResult.
func ParseResult(text string) (entity.EvaluationResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return entity.EvaluationResult{}, errNoJSONObject
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return entity.EvaluationResult{}, fmt.Errorf("decode evaluation: %w", err)
	}
	if raw.Score == nil {
		return entity.EvaluationResult{}, errMissingScore
	}

	return normalize(raw), nil
}

// normalize enforces the score and dimension ranges, derives a missing or
// unknown rubric level from the score and replaces nil lists with empty ones
func normalize(raw rawResult) entity.EvaluationResult {
	result := entity.EvaluationResult{
		Score:             clamp(*raw.Score, entity.MinScore, entity.MaxScore),
		RubricLevel:       entity.RubricLevel(strings.ToLower(strings.TrimSpace(raw.RubricLevel))),
		TechnicalAccuracy: clamp(raw.TechnicalAccuracy, entity.MinDimension, entity.MaxDimension),
		Depth:             clamp(raw.Depth, entity.MinDimension, entity.MaxDimension),
		Experience:        clamp(raw.Experience, entity.MinDimension, entity.MaxDimension),
		Communication:     clamp(raw.Communication, entity.MinDimension, entity.MaxDimension),
		Strengths:         orEmpty(raw.Strengths),
		Improvements:      orEmpty(raw.Improvements),
		FollowUpQuestions: orEmpty(raw.FollowUpQuestions),
	}

	if result.RubricLevel.Validate() != nil {
		result.RubricLevel = entity.RubricForScore(result.Score)
	}

	return result
}

func clamp(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	return int(math.Round(math.Max(float64(lo), math.Min(float64(hi), v))))
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
