package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"interview-analyzer/internal/models"
)

const (
	// Low temperature keeps evaluative output literal instead of creative.
	analysisTemperature float32 = 0.2
	maxAnalysisTokens           = 8192
)

type GeminiService interface {
	AnalyzeInterview(ctx context.Context, req *AnalysisRequest) (*models.InterviewAnalysis, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	apiKey     string
	modelName  string
	embedModel string
}

// NewGeminiService builds the client when a key is configured. With no key
// the service still constructs; requests fail with ErrMissingAPIKey instead
// of taking the process down.
func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	svc := &geminiService{
		apiKey:     apiKey,
		modelName:  modelName,
		embedModel: "text-embedding-004",
	}

	if apiKey == "" {
		return svc, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	svc.client = client
	return svc, nil
}

// AnalyzeInterview implements GeminiService. Every failure past the
// credential check collapses into ErrAnalysisFailed; the cause is logged
// here with full detail and never exposed to the caller.
func (g *geminiService) AnalyzeInterview(ctx context.Context, req *AnalysisRequest) (*models.InterviewAnalysis, error) {
	if g.apiKey == "" || g.client == nil {
		return nil, ErrMissingAPIKey
	}

	media, err := base64.StdEncoding.DecodeString(req.Media.Data)
	if err != nil {
		log.Printf("❌ Analysis request carries an invalid media payload: %v", err)
		return nil, ErrAnalysisFailed
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(media, req.Media.MIMEType),
			genai.NewPartFromText(req.Instruction),
		}, genai.RoleUser),
	}

	temperature := analysisTemperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  maxAnalysisTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return nil, ErrAnalysisFailed
	}

	if resp == nil {
		log.Println("❌ Gemini API returned nil response")
		return nil, ErrAnalysisFailed
	}

	text := resp.Text()
	if text == "" {
		log.Println("❌ No text content in response")
		return nil, ErrAnalysisFailed
	}

	var analysis models.InterviewAnalysis
	if err := json.Unmarshal([]byte(extractJSON(text)), &analysis); err != nil {
		log.Printf("❌ Failed to parse analysis response: %v\nResponse: %s", err, text)
		return nil, ErrAnalysisFailed
	}

	// The schema is enforced remotely, but the report is not trusted
	// until it passes the same invariants locally.
	if err := analysis.Validate(); err != nil {
		log.Printf("❌ Analysis response failed validation: %v\nResponse: %s", err, text)
		return nil, ErrAnalysisFailed
	}

	return &analysis, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if g.apiKey == "" || g.client == nil {
		return nil, ErrMissingAPIKey
	}

	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
