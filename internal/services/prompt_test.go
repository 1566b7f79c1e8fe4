package services

import (
	"slices"
	"strings"
	"testing"

	"interview-analyzer/internal/models"
)

func TestBuildAnalysisRequestSubstitutesDefaultContext(t *testing.T) {
	pb := NewPromptBuilder()
	media := &models.EncodedMedia{MIMEType: "video/mp4", Data: "AAAA"}

	req := pb.BuildAnalysisRequest(media, "", "")

	if !strings.Contains(req.Instruction, defaultJobContext) {
		t.Error("Empty job context should be replaced by the default description")
	}
}

func TestBuildAnalysisRequestPassesContextThrough(t *testing.T) {
	pb := NewPromptBuilder()
	media := &models.EncodedMedia{MIMEType: "video/mp4", Data: "AAAA"}
	jobContext := "Senior backend engineer, Go and PostgreSQL, on-call rotation."

	req := pb.BuildAnalysisRequest(media, jobContext, "")

	if !strings.Contains(req.Instruction, jobContext) {
		t.Error("Non-empty job context should appear in the instruction unchanged")
	}
	if strings.Contains(req.Instruction, defaultJobContext) {
		t.Error("Default description should not appear when a job context is given")
	}
}

func TestBuildAnalysisRequestCarriesMediaAndSchema(t *testing.T) {
	pb := NewPromptBuilder()
	media := &models.EncodedMedia{MIMEType: "video/webm", Data: "cGF5bG9hZA=="}

	req := pb.BuildAnalysisRequest(media, "any role", "")

	if req.Media.MIMEType != "video/webm" || req.Media.Data != "cGF5bG9hZA==" {
		t.Errorf("Request should carry the encoded media as-is, got %+v", req.Media)
	}
	if req.Schema != analysisSchema {
		t.Error("Request should reference the fixed response schema")
	}
}

func TestBuildAnalysisRequestIncludesRubricContext(t *testing.T) {
	pb := NewPromptBuilder()
	media := &models.EncodedMedia{MIMEType: "video/mp4", Data: "AAAA"}
	rubric := "Penalize answers longer than three minutes."

	withRubric := pb.BuildAnalysisRequest(media, "any role", rubric)
	if !strings.Contains(withRubric.Instruction, "ASSESSMENT GUIDELINES:") {
		t.Error("Rubric context should add a guidelines section")
	}
	if !strings.Contains(withRubric.Instruction, rubric) {
		t.Error("Rubric context text should appear in the instruction")
	}

	withoutRubric := pb.BuildAnalysisRequest(media, "any role", "")
	if strings.Contains(withoutRubric.Instruction, "ASSESSMENT GUIDELINES:") {
		t.Error("Guidelines section should be omitted when there is no rubric context")
	}
}

func TestAnalysisSchemaShape(t *testing.T) {
	wantRequired := []string{"overallScore", "summary", "strengths", "weaknesses", "actionableTips", "categories"}
	for _, field := range wantRequired {
		if !slices.Contains(analysisSchema.Required, field) {
			t.Errorf("Schema should require %q", field)
		}
		if _, ok := analysisSchema.Properties[field]; !ok {
			t.Errorf("Schema should describe %q", field)
		}
	}

	category := analysisSchema.Properties["categories"].Items
	if category == nil {
		t.Fatal("Categories schema should describe its items")
	}
	for _, field := range []string{"name", "score", "feedback", "status"} {
		if !slices.Contains(category.Required, field) {
			t.Errorf("Category schema should require %q", field)
		}
	}

	status := category.Properties["status"]
	wantEnum := []string{"excellent", "good", "needs_improvement"}
	if !slices.Equal(status.Enum, wantEnum) {
		t.Errorf("Status enum = %v, want %v", status.Enum, wantEnum)
	}
}

func TestFormatRubricContext(t *testing.T) {
	if got := FormatRubricContext(nil); got != "" {
		t.Errorf("No matches should format to an empty string, got %q", got)
	}

	matches := []RubricMatch{
		{Score: 0.91, Text: "  Reward concise, structured answers.  "},
		{Score: 0.74, Text: "Watch for filler words."},
	}

	got := FormatRubricContext(matches)
	if !strings.Contains(got, "Reward concise, structured answers.") {
		t.Error("Formatted context should contain the match text, trimmed")
	}
	if !strings.Contains(got, "Guideline 2") {
		t.Error("Formatted context should number each guideline")
	}
	if !strings.Contains(got, "0.91") {
		t.Error("Formatted context should include the match score")
	}
}
