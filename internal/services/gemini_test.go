package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"google.golang.org/genai"

	"interview-analyzer/internal/models"
)

// sampleReport is a well-formed response body matching the analysis schema.
const sampleReport = `{"overallScore":82,"summary":"Solid","strengths":["Clear speech"],"weaknesses":["Rambling"],"actionableTips":["Be concise"],"categories":[{"name":"Verbal Communication","score":80,"feedback":"Good pace","status":"good"}]}`

func newTestGeminiService(t *testing.T, handler http.Handler) *geminiService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     "test-key",
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: server.Client(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL: server.URL,
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return &geminiService{
		client:     client,
		apiKey:     "test-key",
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
	}
}

// modelResponse wraps text in the generateContent response envelope.
func modelResponse(text string) []byte {
	payload := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
					"role":  "model",
				},
				"finishReason": "STOP",
			},
		},
	}

	data, _ := json.Marshal(payload)
	return data
}

func testAnalysisRequest() *AnalysisRequest {
	media := &models.EncodedMedia{
		MIMEType: "video/mp4",
		Data:     base64.StdEncoding.EncodeToString([]byte("fake video bytes")),
	}

	return NewPromptBuilder().BuildAnalysisRequest(media, "Backend engineer role", "")
}

func TestAnalyzeInterviewParsesReport(t *testing.T) {
	var requestBody []byte
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(modelResponse(sampleReport))
	}))

	req := testAnalysisRequest()
	analysis, err := svc.AnalyzeInterview(context.Background(), req)
	if err != nil {
		t.Fatalf("AnalyzeInterview failed: %v", err)
	}

	if analysis.OverallScore != 82 {
		t.Errorf("OverallScore = %d, want 82", analysis.OverallScore)
	}
	if analysis.Summary != "Solid" {
		t.Errorf("Summary = %q, want %q", analysis.Summary, "Solid")
	}
	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "Clear speech" {
		t.Errorf("Strengths = %v, want [Clear speech]", analysis.Strengths)
	}
	if len(analysis.Categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(analysis.Categories))
	}

	category := analysis.Categories[0]
	if category.Name != "Verbal Communication" || category.Score != 80 || category.Status != models.StatusGood {
		t.Errorf("Category = %+v, want Verbal Communication/80/good", category)
	}

	// The inline media and the schema constraint must both reach the wire.
	if !strings.Contains(string(requestBody), req.Media.Data) {
		t.Error("Outbound request should carry the encoded media payload")
	}
	if !strings.Contains(string(requestBody), "application/json") {
		t.Error("Outbound request should constrain the response to JSON")
	}
}

func TestAnalyzeInterviewAcceptsFencedJSON(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(modelResponse("```json\n" + sampleReport + "\n```"))
	}))

	analysis, err := svc.AnalyzeInterview(context.Background(), testAnalysisRequest())
	if err != nil {
		t.Fatalf("AnalyzeInterview failed: %v", err)
	}
	if analysis.OverallScore != 82 {
		t.Errorf("OverallScore = %d, want 82", analysis.OverallScore)
	}
}

func TestAnalyzeInterviewCollapsesFailuresIntoOneError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "response is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write(modelResponse("I am sorry, I cannot analyze this video."))
			},
		},
		{
			name: "score out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write(modelResponse(strings.Replace(sampleReport, `"overallScore":82`, `"overallScore":250`, 1)))
			},
		},
		{
			name: "unknown category status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write(modelResponse(strings.Replace(sampleReport, `"status":"good"`, `"status":"stellar"`, 1)))
			},
		},
		{
			name: "empty candidate list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":500,"message":"internal"}}`, http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestGeminiService(t, tt.handler)

			analysis, err := svc.AnalyzeInterview(context.Background(), testAnalysisRequest())
			if !errors.Is(err, ErrAnalysisFailed) {
				t.Errorf("Expected ErrAnalysisFailed, got %v", err)
			}
			if analysis != nil {
				t.Error("No report should be returned on failure")
			}
		})
	}
}

func TestAnalyzeInterviewMissingKeyMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write(modelResponse(sampleReport))
	}))

	// Clearing the key must short-circuit before the client is touched,
	// even though the client here is fully usable.
	svc.apiKey = ""

	_, err := svc.AnalyzeInterview(context.Background(), testAnalysisRequest())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("Expected zero outbound calls, got %d", got)
	}
}

func TestGenerateEmbedding(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embeddings":[{"values":[0.1,0.2,0.3]}]}`))
	}))

	values, err := svc.GenerateEmbedding(context.Background(), "rubric text")
	if err != nil {
		t.Fatalf("GenerateEmbedding failed: %v", err)
	}
	if len(values) != 3 {
		t.Errorf("Expected 3 embedding values, got %d", len(values))
	}
}

func TestGenerateEmbeddingMissingKey(t *testing.T) {
	svc := &geminiService{embedModel: "text-embedding-004"}

	if _, err := svc.GenerateEmbedding(context.Background(), "text"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	want := `{"overallScore": 90}`

	tests := []struct {
		name string
		in   string
	}{
		{"bare object", `{"overallScore": 90}`},
		{"fenced object", "```json\n{\"overallScore\": 90}\n```"},
		{"surrounding prose", "Here is the report:\n{\"overallScore\": 90}\nLet me know!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, want)
			}
		})
	}
}
