package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"contentforge/internal/config"
	"contentforge/internal/content_service/api"
	"contentforge/internal/content_service/catalog"
	"contentforge/internal/content_service/pipeline"
	"contentforge/internal/content_service/rag/loaders"
	"contentforge/internal/content_service/rag/splitters"
	"contentforge/internal/content_service/rag/storages/vectorstore"
	"contentforge/internal/database/qdrant"
	"contentforge/internal/embedding"
	"contentforge/internal/llm"
	"contentforge/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("content_service")
	appLogger.Info("Starting content service...")

	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.Embedding.Provider == string(embedding.OpenAI) && cfg.Embedding.APIKey == "" {
		appLogger.Warn("Embedding API key is not set, ingestion will degrade to text-only storage")
	}
	if cfg.Generation.APIKey == "" {
		appLogger.Warn("Generation API key is not set, query and suggestion endpoints will fail")
	}

	// 3. Vector index. A missing collection is created at boot; an
	// unreachable backend is tolerated so the textual catalog keeps
	// serving while the index is down.
	qdrantClient := qdrant.NewClient(&cfg.Qdrant)
	index := vectorstore.NewQdrantStore(qdrantClient, cfg.Qdrant.VectorSize)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := index.EnsureCollection(bootCtx); err != nil {
		appLogger.WithError(err).Warn("Vector collection unavailable at startup, continuing without vectors")
	}
	cancelBoot()

	// 4. Embedding and generation providers
	model, err := embedding.NewModel(cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.APIKey, cfg.Embedding.BaseURL)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to create embedding model")
	}
	embedder := embedding.NewGateway(model, cfg.Embedding.Provider, cfg.Embedding.Dimensions)
	generator := llm.NewProvider(&cfg.Generation, logger.New("llm"))

	// 5. Core services
	splitter := splitters.NewTextSplitter(cfg.Chunking.MaxChunkSize, cfg.Chunking.Overlap)
	cat := catalog.NewCatalog(catalog.NewStore(), splitter, embedder, index, loaders.NewWebLoader(0))
	queries := pipeline.NewQueryEngine(embedder, index, generator, cfg.Generation.Timeout)
	suggestions := pipeline.NewSuggestionEngine(cat, generator, cfg.Generation.Timeout)

	// 6. HTTP server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.RegisterRoutes(router, api.NewAPI(cat, queries, suggestions, logger.New("api")))

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info("Content service listening on " + cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down content service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
	appLogger.Info("Content service stopped")
}
