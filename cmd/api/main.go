// @title SmartNotes API
// @version 1.0
// @description Document OCR, summary and quiz generation service.
// @host localhost:5000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"smartnotes/internal/adapter"
	"smartnotes/internal/adapter/extraction"
	"smartnotes/internal/adapter/generation"
	"smartnotes/internal/cache"
	"smartnotes/internal/config"
	"smartnotes/internal/database"
	"smartnotes/internal/domain"
	"smartnotes/internal/handler"
	"smartnotes/internal/logger"
	"smartnotes/internal/middleware"
	"smartnotes/internal/repository"
	"smartnotes/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Extraction providers, in fallback order
	visionAdapter := extraction.NewVisionAdapter(
		cfg.Extraction.Vision.Endpoint,
		cfg.Extraction.Vision.APIKey,
		cfg.Extraction.Vision.Timeout,
	)
	ocrSpaceAdapter := extraction.NewOCRSpaceAdapter(
		cfg.Extraction.OCRSpace.Endpoint,
		cfg.Extraction.OCRSpace.APIKey,
		cfg.Extraction.OCRSpace.Engine,
		cfg.Extraction.OCRSpace.Language,
		cfg.Extraction.OCRSpace.Timeout,
	)
	extractors := []domain.TextExtractor{visionAdapter, ocrSpaceAdapter}

	// Generation providers, in fallback order
	openAIAdapter := generation.NewOpenAIAdapter(
		cfg.Generation.OpenAI.APIKey,
		cfg.Generation.OpenAI.Model,
		cfg.Generation.OpenAI.Timeout,
	)
	geminiAdapter := generation.NewGeminiAdapter(
		cfg.Generation.Gemini.APIKey,
		cfg.Generation.Gemini.Model,
		cfg.Generation.Gemini.Timeout,
	)
	generators := []domain.TextGenerator{openAIAdapter, geminiAdapter}

	if cfg.Generation.Ollama.ServerURL != "" {
		appLogger.Info("Registering Ollama fallback",
			zap.String("server_url", cfg.Generation.Ollama.ServerURL),
			zap.String("model", cfg.Generation.Ollama.Model),
		)
		ollamaAdapter, err := generation.NewOllamaAdapter(
			cfg.Generation.Ollama.ServerURL,
			cfg.Generation.Ollama.Model,
			cfg.Generation.Ollama.Timeout,
		)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama adapter", zap.Error(err))
		}
		generators = append(generators, ollamaAdapter)
	}

	// Redis is optional. Without it extraction results are simply not cached.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, extraction caching disabled", zap.Error(err))
	} else {
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	// The database is optional as well. Without it summaries are returned
	// but not persisted as notes.
	var noteRepository domain.NoteRepository
	if cfg.DB.Host != "" {
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.RunMigrations(db.DB); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
		noteRepository = repository.NewSQLXNoteRepository(db)
		appLogger.Info("Note repository initialized")
	} else {
		appLogger.Warn("No database configured, notes will not be persisted")
	}

	// Initialize services
	extractionService := service.NewExtractionService(cacheAdapter, cfg, extractors...)
	generationService := service.NewGenerationService(generators...)
	quizService := service.NewQuizService(generationService)
	summaryService := service.NewSummaryService(generationService, noteRepository)

	// Initialize handlers
	extractionHandler := handler.NewExtractionHandler(extractionService)
	generationHandler := handler.NewGenerationHandler(generationService)
	quizHandler := handler.NewQuizHandler(quizService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Check)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/ocr", extractionHandler.ExtractText)
	apiGroup.Post("/generate", generationHandler.Generate)
	apiGroup.Post("/quiz", quizHandler.GenerateQuiz)
	apiGroup.Post("/summary", summaryHandler.Summarize)
	apiGroup.Get("/notes/:id", summaryHandler.GetNote)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
