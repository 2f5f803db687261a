package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/connexe-cloud/connexe/internal/config"
	"github.com/connexe-cloud/connexe/internal/db"
	dbRedis "github.com/connexe-cloud/connexe/internal/db/redis"
	"github.com/connexe-cloud/connexe/internal/domain"
	logpkg "github.com/connexe-cloud/connexe/internal/logger"
	"github.com/connexe-cloud/connexe/internal/metrics"
	"github.com/connexe-cloud/connexe/internal/repository/embcache"
	"github.com/connexe-cloud/connexe/internal/repository/records"
	"github.com/connexe-cloud/connexe/internal/repository/vector"
	"github.com/connexe-cloud/connexe/internal/transport/httpapi"
	openaiEmb "github.com/connexe-cloud/connexe/internal/transport/openai"
	"github.com/connexe-cloud/connexe/internal/usecase/ingest"
	"github.com/connexe-cloud/connexe/internal/usecase/recommend"
	"github.com/connexe-cloud/connexe/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting connexe API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	baseEmbedder, embedder := buildEmbedder(cfg.Embedding, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	hnsw := vector.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	}
	contentIndex := vector.New(store, domain.DomainContent, cfg.Embedding.Dimensions).WithHNSW(hnsw)
	developerIndex := vector.New(store, domain.DomainDeveloper, cfg.Embedding.Dimensions).WithHNSW(hnsw)

	for _, idx := range []*vector.Index{contentIndex, developerIndex} {
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.Fatal("Failed to ensure vector index",
				zap.String("index", idx.Name()), zap.Error(err))
		}
	}
	logger.Info("Vector indexes ready")

	recordRepo := records.New(store)

	ingestSvc := ingest.New(recordRepo, contentIndex, developerIndex, embedder)
	recommendSvc := recommend.New(recordRepo, contentIndex, developerIndex, embedder)

	server := httpapi.NewServer(ingestSvc, recommendSvc, store, baseEmbedder, cfg.Auth.IngestSecret, logger)

	r := chi.NewRouter()
	r.Use(httpapi.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(httpapi.WideEvent(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached. The base
// embedder is returned alongside the chain so its health probe stays reachable.
func buildEmbedder(cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger) (*openaiEmb.Embedder, domain.Embedder) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	if store == nil {
		return base, base
	}
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	return base, embcache.New(base, store, ttl, metrics.EmbeddingCacheTotal, logger)
}
