package entity

import "fmt"

type RubricLevel string

const (
	RubricExcellent RubricLevel = "excellent"
	RubricGood      RubricLevel = "good"
	RubricAverage   RubricLevel = "average"
	RubricPoor      RubricLevel = "poor"
)

func (r RubricLevel) Validate() error {
	switch r {
	case RubricExcellent, RubricGood, RubricAverage, RubricPoor:
		return nil
	default:
		return fmt.Errorf("unknown rubric level: %q", string(r))
	}
}

// Score and dimension bounds of an EvaluationResult
const (
	MinScore     = 0
	MaxScore     = 100
	MinDimension = 0
	MaxDimension = 10
)

// EvaluationResult is the structured score of a single answer
type EvaluationResult struct {
	Score             int         `json:"score"`
	RubricLevel       RubricLevel `json:"rubricLevel"`
	TechnicalAccuracy int         `json:"technicalAccuracy"`
	Depth             int         `json:"depth"`
	Experience        int         `json:"experience"`
	Communication     int         `json:"communication"`
	Strengths         []string    `json:"strengths"`
	Improvements      []string    `json:"improvements"`
	FollowUpQuestions []string    `json:"followUpQuestions"`
}

// RubricForScore maps a 0..100 score onto its rubric band
func RubricForScore(score int) RubricLevel {
	switch {
	case score >= 85:
		return RubricExcellent
	case score >= 70:
		return RubricGood
	case score >= 50:
		return RubricAverage
	default:
		return RubricPoor
	}
}
