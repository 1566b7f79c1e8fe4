package models

import "fmt"

// CategoryStatus is the qualitative rating attached to an assessment category.
type CategoryStatus string

const (
	StatusExcellent        CategoryStatus = "excellent"
	StatusGood             CategoryStatus = "good"
	StatusNeedsImprovement CategoryStatus = "needs_improvement"
)

func (s CategoryStatus) Valid() bool {
	switch s {
	case StatusExcellent, StatusGood, StatusNeedsImprovement:
		return true
	}
	return false
}

// AnalysisState tracks the lifecycle of the current analysis slot.
type AnalysisState string

const (
	StateIdle      AnalysisState = "idle"
	StateInFlight  AnalysisState = "in_flight"
	StateSucceeded AnalysisState = "succeeded"
	StateFailed    AnalysisState = "failed"
)

// AssessmentCategory is one scored dimension of the interview report.
type AssessmentCategory struct {
	Name     string         `json:"name"`
	Score    int            `json:"score"`
	Feedback string         `json:"feedback"`
	Status   CategoryStatus `json:"status"`
}

// InterviewAnalysis is the full report returned by the model. Field names
// match the response schema sent with the request, so a conformant reply
// unmarshals directly into this struct.
type InterviewAnalysis struct {
	OverallScore      int                  `json:"overallScore"`
	Summary           string               `json:"summary"`
	Strengths         []string             `json:"strengths"`
	Weaknesses        []string             `json:"weaknesses"`
	ActionableTips    []string             `json:"actionableTips"`
	Categories        []AssessmentCategory `json:"categories"`
	TranscriptSnippet string               `json:"transcriptSnippet,omitempty"`
}

// Validate re-checks the invariants the response schema is supposed to
// enforce. The remote service is not trusted to get them right.
func (a *InterviewAnalysis) Validate() error {
	if a.OverallScore < 0 || a.OverallScore > 100 {
		return fmt.Errorf("overall score %d out of range [0,100]", a.OverallScore)
	}

	if len(a.Categories) == 0 {
		return fmt.Errorf("report contains no assessment categories")
	}

	for i, cat := range a.Categories {
		if cat.Score < 0 || cat.Score > 100 {
			return fmt.Errorf("category %q score %d out of range [0,100]", cat.Name, cat.Score)
		}
		if !cat.Status.Valid() {
			return fmt.Errorf("category %d has unknown status %q", i, cat.Status)
		}
	}

	return nil
}
