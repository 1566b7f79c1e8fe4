package services

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"interview-analyzer/internal/models"
)

// defaultJobContext stands in when the user submits no job description.
const defaultJobContext = "A general professional role where clear communication, structured answers, and confident delivery are the primary evaluation criteria."

// AnalysisRequest is the immutable value handed to the remote client.
// Built once per submission and never mutated.
type AnalysisRequest struct {
	Media       models.EncodedMedia
	Instruction string
	Schema      *genai.Schema
}

// analysisSchema forces the model's response into the InterviewAnalysis
// shape so it parses directly into typed fields.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overallScore": {
			Type:        genai.TypeInteger,
			Description: "Overall interview performance from 0 to 100",
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "Concise overall assessment, 2-4 sentences",
		},
		"strengths": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"weaknesses": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"actionableTips": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"categories": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString},
					"score": {
						Type:        genai.TypeInteger,
						Description: "Category score from 0 to 100",
					},
					"feedback": {Type: genai.TypeString},
					"status": {
						Type: genai.TypeString,
						Enum: []string{"excellent", "good", "needs_improvement"},
					},
				},
				Required: []string{"name", "score", "feedback", "status"},
			},
		},
		"transcriptSnippet": {
			Type:        genai.TypeString,
			Description: "Optional short quote from the candidate that illustrates a key point",
		},
	},
	Required: []string{"overallScore", "summary", "strengths", "weaknesses", "actionableTips", "categories"},
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisRequest composes the instruction and schema for one
// submission. An empty job context is replaced by the fixed default; any
// non-empty string passes through unchanged.
func (pb *PromptBuilder) BuildAnalysisRequest(media *models.EncodedMedia, jobContext, rubricContext string) *AnalysisRequest {
	if jobContext == "" {
		jobContext = defaultJobContext
	}

	return &AnalysisRequest{
		Media:       *media,
		Instruction: pb.buildInstruction(jobContext, rubricContext),
		Schema:      analysisSchema,
	}
}

func (pb *PromptBuilder) buildInstruction(jobContext, rubricContext string) string {
	rubricSection := ""
	if rubricContext != "" {
		rubricSection = fmt.Sprintf("\nASSESSMENT GUIDELINES:\n%s\n", rubricContext)
	}

	return fmt.Sprintf(`You are an expert interview coach analyzing a candidate's recorded practice interview.

JOB CONTEXT:
%s
%s
Watch the entire video and evaluate the candidate's performance against the job context above.

Assess the following dimensions:
1. Verbal Communication - clarity, pacing, filler words, articulation
2. Content Quality - answer structure, relevance, use of concrete examples
3. Confidence & Presence - eye contact, posture, energy, composure
4. Professionalism - tone, word choice, overall impression

Score the overall performance and each assessment category from 0 to 100. Mark a category "excellent" (85 and above), "good" (60-84), or "needs_improvement" (below 60). Provide 3-5 strengths, 3-5 weaknesses, and 3-5 actionable tips. If a short quote from the candidate illustrates a key point, include it as the transcript snippet.

Be specific and constructive. Reference actual moments from the video to justify your scores.`,
		jobContext, rubricSection)
}

// BuildRetrievalQuery shapes the query used to look up scoring guidance
// for a submission's job context.
func (pb *PromptBuilder) BuildRetrievalQuery(jobContext string) string {
	if jobContext == "" {
		jobContext = defaultJobContext
	}

	return fmt.Sprintf("Interview assessment criteria and scoring guidelines for: %s", jobContext)
}

// FormatRubricContext flattens retrieved rubric chunks into a prompt
// section. Empty input yields an empty string so the section is omitted.
func FormatRubricContext(matches []RubricMatch) string {
	if len(matches) == 0 {
		return ""
	}

	var parts []string
	for i, match := range matches {
		parts = append(parts, fmt.Sprintf("--- Guideline %d (Score: %.2f) ---\n%s",
			i+1, match.Score, strings.TrimSpace(match.Text)))
	}

	return strings.Join(parts, "\n\n")
}
