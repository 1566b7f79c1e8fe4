package services

import (
	"context"
	"fmt"
	"log"

	"interview-analyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, media *models.SelectedMedia, jobContext string) (*models.InterviewAnalysis, error)
}

type analyzerService struct {
	validator     MediaValidator
	encoder       MediaEncoder
	geminiService GeminiService
	rubricStore   RubricStore
	promptBuilder *PromptBuilder
}

// NewAnalyzerService wires the submission pipeline. rubricStore may be nil,
// in which case analyses run without retrieved scoring guidance.
func NewAnalyzerService(
	validator MediaValidator,
	encoder MediaEncoder,
	geminiService GeminiService,
	rubricStore RubricStore,
) AnalyzerService {
	return &analyzerService{
		validator:     validator,
		encoder:       encoder,
		geminiService: geminiService,
		rubricStore:   rubricStore,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements AnalyzerService. It runs the whole submission
// pipeline in order: validate, encode, retrieve guidance, build the
// request, call the model. The caller blocks for the full duration.
func (a *analyzerService) Analyze(ctx context.Context, media *models.SelectedMedia, jobContext string) (*models.InterviewAnalysis, error) {
	log.Printf("🔄 Starting analysis of %q (%s, %d bytes)\n", media.DisplayName, media.MIMEType, media.Size)

	if err := a.validator.Validate(media.MIMEType, media.Size); err != nil {
		return nil, err
	}

	encoded := a.encoder.Encode(media)

	rubricContext := a.retrieveRubricContext(ctx, jobContext)

	request := a.promptBuilder.BuildAnalysisRequest(encoded, jobContext, rubricContext)

	log.Println("🤖 Analyzing interview with LLM...")
	analysis, err := a.geminiService.AnalyzeInterview(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze interview: %w", err)
	}

	log.Printf("✅ Analysis completed with overall score %d\n", analysis.OverallScore)
	return analysis, nil
}

// retrieveRubricContext looks up scoring guidance for the job context.
// Retrieval is best effort: any failure degrades to an analysis without
// guidance rather than failing the submission.
func (a *analyzerService) retrieveRubricContext(ctx context.Context, jobContext string) string {
	if a.rubricStore == nil {
		return ""
	}

	log.Println("🔍 Retrieving rubric context for analysis...")
	query := a.promptBuilder.BuildRetrievalQuery(jobContext)

	embedding, err := a.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to embed retrieval query: %v\n", err)
		return ""
	}

	matches, err := a.rubricStore.SearchSimilar(ctx, embedding, "assessment_rubric", 3)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve rubric context: %v\n", err)
		return ""
	}

	return FormatRubricContext(matches)
}
