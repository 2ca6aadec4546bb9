package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/config"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/generator"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/handlers"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/jobs"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/llm"
	_ "github.com/sudeeppatil24315/ai-mock-interview/internal/llm/gemini"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/metrics"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/presence"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/prompts"
	mongostore "github.com/sudeeppatil24315/ai-mock-interview/internal/repositories/mongo"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/routers"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/scoring"
)

func registerRoutes(router *chi.Mux, feedbackHandler *handlers.FeedbackHandler, interviewHandler *handlers.InterviewHandler, sessionHandler *handlers.SessionHandler, presenceHandler *handlers.PresenceHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.FeedbackRoutes(router, feedbackHandler)
	routers.InterviewRoutes(router, interviewHandler, feedbackHandler)
	routers.SessionRoutes(router, sessionHandler, presenceHandler)
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("generate_mode", cfg.GenerateMode))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration; scoring requests fail with a
	// descriptive error when credentials are missing, the rest of the
	// service stays up
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Error("Failed to initialize AI provider, scoring will be unavailable", zap.Error(err))
	}

	ctx := context.Background()

	// document store
	mongoClient, err := mongostore.NewClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	interviewRepo, err := mongostore.NewInterviewRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize interview repository", zap.Error(err))
	}
	feedbackRepo, err := mongostore.NewFeedbackRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize feedback repository", zap.Error(err))
	}

	// session registry
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	registry := presence.NewRegistry(redisClient, logger)

	pipeline := scoring.NewPipeline(aiProvider, promptManager, feedbackRepo, logger)
	generatorService := generator.NewService(interviewRepo, logger)

	// feedback exporter job
	exporterJob := jobs.NewFeedbackExporterJob(feedbackRepo, &jobs.ExporterConfig{
		Schedule:  cfg.FeedbackExportSchedule,
		ExportDir: cfg.FeedbackExportDir,
		Enabled:   cfg.FeedbackExportEnabled,
	}, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start feedback exporter job", zap.Error(err))
	}
	defer exporterJob.Stop()

	feedbackHandler := handlers.NewFeedbackHandler(pipeline, feedbackRepo, logger)
	interviewHandler := handlers.NewInterviewHandler(generatorService, interviewRepo, cfg.MaxInterviews, logger)
	sessionHandler := handlers.NewSessionHandler(interviewRepo, feedbackRepo, pipeline, generatorService, promptManager, registry, cfg, logger)
	presenceHandler := handlers.NewPresenceHandler(registry, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, mongoClient, redisClient, cfg)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer)
	router.Use(metrics.Middleware())

	registerRoutes(router, feedbackHandler, interviewHandler, sessionHandler, presenceHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts; no WriteTimeout because WebSocket sessions
	// outlive any sensible response deadline
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}
