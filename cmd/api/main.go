package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"interview-analyzer/internal/config"
	"interview-analyzer/internal/handlers"
	"interview-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set. Submissions will fail until it is configured.")
	} else {
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Initialize Qdrant rubric store (optional)
	var rubricStore services.RubricStore
	if cfg.Qdrant.URL != "" {
		rubricStore, err = services.NewRubricStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := rubricStore.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant rubric store initialized successfully")
	} else {
		log.Println("ℹ️  QDRANT_URL is not set. Rubric retrieval is disabled.")
	}

	// Initialize services
	validator := services.NewMediaValidator(cfg.Upload.MaxFileSize)
	encoder := services.NewMediaEncoder()
	pdfParser := services.NewPDFParserService()
	session := services.NewAnalysisSession()

	analyzerService := services.NewAnalyzerService(
		validator,
		encoder,
		geminiService,
		rubricStore,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzerService,
		encoder,
		pdfParser,
		session,
	)
	sessionHandler := handlers.NewSessionHandler(session)
	log.Println("✅ Handlers initialized")

	// Create Fiber app. Write timeout is generous because a submission
	// blocks until the remote analysis finishes.
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Analyzer API",
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    bodyLimitFor(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analysis", sessionHandler.HandleGetAnalysis)
	api.Delete("/analysis", sessionHandler.HandleReset)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/analysis",
				"DELETE /api/v1/analysis",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// bodyLimitFor leaves headroom over the raw file ceiling: a data URL in a
// JSON body inflates the payload by a third. An unconfigured ceiling falls
// back to the validator's default so fiber never sees a non-positive limit.
func bodyLimitFor(maxFileSize int64) int {
	if maxFileSize <= 0 {
		maxFileSize = services.DefaultMaxUploadBytes
	}
	return int(maxFileSize + maxFileSize/2)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
