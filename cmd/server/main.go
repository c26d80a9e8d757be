package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/auth"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/capabilities"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/config"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/handler"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/middleware"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/repository/postgres"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai/anthropic"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 5)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for bearer token authentication
	var verifier auth.TokenVerifier
	if !cfg.AuthDisabled {
		var err error
		verifier, err = auth.NewJWKSVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
	} else {
		logger.Warn("AUTH DISABLED: requests run as a fixed dev user (never use in production!)")
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names and apply the schema
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ideaRepo := postgres.NewIdeaRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	diagramRepo := postgres.NewDiagramRepository(repoConfig)
	featureRepo := postgres.NewFeatureRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}

	// AI gateway and service
	maxTokens := capabilityRegistry.MaxOutputTokens("anthropic", cfg.DefaultModel)
	gateway, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.DefaultModel, maxTokens)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}
	aiService := ai.NewService(gateway, logger)

	// Create entity services
	ideaService := service.NewIdeaService(ideaRepo, aiService, logger)
	docService := service.NewDocumentService(docRepo, ideaRepo, txManager, aiService, logger)
	diagramService := service.NewDiagramService(diagramRepo, ideaRepo, txManager, aiService, logger)
	featureService := service.NewFeatureService(featureRepo, docRepo, ideaRepo, txManager, aiService, logger)
	taskService := service.NewTaskService(taskRepo, featureRepo, txManager, aiService, logger)

	// Create handlers
	healthHandler := handler.NewHealthHandler(pool)
	ideaHandler := handler.NewIdeaHandler(ideaService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	diagramHandler := handler.NewDiagramHandler(diagramService, logger)
	featureHandler := handler.NewFeatureHandler(featureService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	logger.Info("services initialized", "model", cfg.DefaultModel)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Idea routes
	mux.HandleFunc("POST /api/ideas", ideaHandler.CreateIdea)
	mux.HandleFunc("GET /api/ideas", ideaHandler.ListIdeas)
	mux.HandleFunc("GET /api/ideas/{id}", ideaHandler.GetIdea)
	mux.HandleFunc("DELETE /api/ideas/{id}", ideaHandler.DeleteIdea)
	mux.HandleFunc("POST /api/ideas/{id}/analyze", ideaHandler.AnalyzeIdea)
	mux.HandleFunc("POST /api/ideas/{id}/refine", ideaHandler.RefineIdea)
	mux.HandleFunc("POST /api/ideas/{id}/confirm", ideaHandler.ConfirmIdea)

	// Document routes
	mux.HandleFunc("POST /api/documents/generate/{ideaId}", docHandler.GenerateDocuments)
	mux.HandleFunc("GET /api/documents/idea/{ideaId}", docHandler.ListDocumentsByIdea)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("GET /api/documents/{id}/full", docHandler.GetDocumentWithVersions)
	mux.HandleFunc("PUT /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("GET /api/documents/{id}/versions", docHandler.GetVersionHistory)
	mux.HandleFunc("POST /api/documents/{id}/revert/{version}", docHandler.RevertToVersion)
	mux.HandleFunc("POST /api/documents/{id}/regenerate", docHandler.RegenerateDocument)
	mux.HandleFunc("GET /api/documents/{id}/export/{format}", docHandler.ExportDocument)

	// Diagram routes
	mux.HandleFunc("POST /api/diagrams/generate/{ideaId}", diagramHandler.GenerateDiagrams)
	mux.HandleFunc("GET /api/diagrams/idea/{ideaId}", diagramHandler.ListDiagramsByIdea)
	mux.HandleFunc("GET /api/diagrams/{id}", diagramHandler.GetDiagram)
	mux.HandleFunc("GET /api/diagrams/{id}/full", diagramHandler.GetDiagramWithVersions)
	mux.HandleFunc("PUT /api/diagrams/{id}", diagramHandler.UpdateDiagram)
	mux.HandleFunc("GET /api/diagrams/{id}/versions", diagramHandler.GetVersionHistory)
	mux.HandleFunc("POST /api/diagrams/{id}/regenerate", diagramHandler.RegenerateDiagram)

	// Feature routes
	mux.HandleFunc("POST /api/features/extract/{ideaId}", featureHandler.ExtractFeatures)
	mux.HandleFunc("POST /api/features", featureHandler.CreateFeature)
	mux.HandleFunc("GET /api/features/idea/{ideaId}", featureHandler.ListFeaturesByIdea)
	mux.HandleFunc("GET /api/features/{id}", featureHandler.GetFeature)
	mux.HandleFunc("GET /api/features/{id}/full", featureHandler.GetFeatureWithRelations)
	mux.HandleFunc("PATCH /api/features/{id}", featureHandler.UpdateFeature)
	mux.HandleFunc("DELETE /api/features/{id}", featureHandler.DeleteFeature)
	mux.HandleFunc("GET /api/features/{id}/versions", featureHandler.GetVersionHistory)
	mux.HandleFunc("POST /api/features/{id}/diagrams/{diagramId}", featureHandler.LinkDiagram)
	mux.HandleFunc("DELETE /api/features/{id}/diagrams/{diagramId}", featureHandler.UnlinkDiagram)

	// Task routes
	mux.HandleFunc("POST /api/tasks/suggest/{featureId}", taskHandler.SuggestTasks)
	mux.HandleFunc("POST /api/tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /api/tasks/feature/{featureId}", taskHandler.ListTasksByFeature)
	mux.HandleFunc("GET /api/tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("GET /api/tasks/{id}/full", taskHandler.GetTaskWithDependencies)
	mux.HandleFunc("PATCH /api/tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/status", taskHandler.UpdateTaskStatus)
	mux.HandleFunc("DELETE /api/tasks/{id}", taskHandler.DeleteTask)
	mux.HandleFunc("GET /api/tasks/{id}/versions", taskHandler.GetVersionHistory)
	mux.HandleFunc("POST /api/tasks/{id}/dependencies/{dependsOnId}", taskHandler.AddDependency)
	mux.HandleFunc("DELETE /api/tasks/{id}/dependencies/{dependsOnId}", taskHandler.RemoveDependency)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.Auth(verifier, cfg.AuthDisabled, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // AI generation calls are slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server with graceful shutdown
	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
