package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"interview-analyzer/internal/config"
	"interview-analyzer/internal/services"
)

func main() {
	log.Println("🚀 Starting rubric ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY must be set to generate embeddings")
	}
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL must be set to store rubric chunks")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	rubricStore, err := services.NewRubricStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := rubricStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	rubrics := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/interview_assessment_rubric.pdf",
			DocType: "assessment_rubric",
			Name:    "Interview Assessment Rubric",
		},
		{
			Path:    "./reference_docs/communication_scoring_guide.pdf",
			DocType: "assessment_rubric",
			Name:    "Communication Scoring Guide",
		},
		{
			Path:    "./reference_docs/behavioral_interview_guide.pdf",
			DocType: "assessment_rubric",
			Name:    "Behavioral Interview Guide",
		},
	}

	successCount := 0
	failCount := 0

	for _, rubric := range rubrics {
		log.Printf("\n📄 Processing: %s", rubric.Name)
		log.Printf("   Path: %s", rubric.Path)

		// Check if file exists
		if _, err := os.Stat(rubric.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text from PDF
		log.Printf("   📖 Extracting text...")
		content, err := pdfParser.ExtractText(rubric.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(content.Text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			rubricID := fmt.Sprintf("%s_chunk_%d", rubric.DocType, i)

			if err := rubricStore.UpsertChunk(ctx, rubricID, rubric.DocType, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", rubric.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d rubrics", successCount)
	log.Printf("   ❌ Failed: %d rubrics", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some rubrics failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All rubrics ingested successfully!")
}
