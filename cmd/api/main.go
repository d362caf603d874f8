// Command api runs the medlink HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medlink-backend/internal/config"
	"medlink-backend/internal/infrastructure/cache"
	"medlink-backend/internal/infrastructure/observability"
	"medlink-backend/internal/infrastructure/persistence/supabase"
	"medlink-backend/internal/infrastructure/tracing"
	"medlink-backend/internal/interfaces/http/rest"
	"medlink-backend/internal/middleware"
	"medlink-backend/internal/service/chat"
	"medlink-backend/internal/service/connections"
	"medlink-backend/internal/service/feed"
	"medlink-backend/internal/service/intelligence"
	"medlink-backend/internal/service/reputation"
	"medlink-backend/pkg/auth"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; containers pass real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting medlink api",
		zap.String("environment", string(cfg.Environment)),
		zap.Int("port", cfg.Server.Port),
		zap.Strings("config_sources", cfg.LoadedFrom),
	)

	tracerProvider, err := tracing.Init(cfg.Tracing, string(cfg.Environment))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	store, err := supabase.NewStore(cfg.Supabase, logger)
	if err != nil {
		return fmt.Errorf("connect supabase: %w", err)
	}

	var collector *observability.Collector
	if cfg.Features.EnableMetrics {
		collector = observability.NewCollector("medlink")
	}

	var trendCache *cache.TrendCache
	if cfg.Features.EnableTrendCache {
		trendCache, err = cache.NewTrendCache(cfg.Redis, logger)
		if err != nil {
			// Trending works without the cache, just slower.
			logger.Warn("trend cache unavailable, continuing without it", zap.Error(err))
			trendCache = nil
		} else {
			defer trendCache.Close()
		}
	}

	reputationService := reputation.NewService(supabase.NewKarmaStore(store), collector, logger)
	feedService := feed.NewService(
		supabase.NewPostStore(store),
		supabase.NewCommentStore(store),
		supabase.NewVoteStore(store),
		supabase.NewCommunityStore(store),
		reputationService,
		collector,
		logger,
	)
	chatService := chat.NewService(supabase.NewMessageStore(store), logger)
	connectionsService := connections.NewService(supabase.NewSocialStore(store), logger)
	intelligenceService := intelligence.NewService(
		supabase.NewPostStore(store),
		supabase.NewSearchStore(store),
		supabase.NewAnalysisStore(store),
		trendCache,
		intelligence.Config{
			DemoFallback:  cfg.Features.EnableDemoFallback,
			AnalysisAudit: cfg.Features.EnableAnalysisAudit,
		},
		collector,
		logger,
	)

	validator, err := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return fmt.Errorf("create jwt validator: %w", err)
	}
	authenticator := middleware.NewAuthenticator(validator, store.Auth(), logger)

	router := rest.NewRouter(cfg, rest.Services{
		Feed:         feedService,
		Reputation:   reputationService,
		Chat:         chatService,
		Connections:  connectionsService,
		Intelligence: intelligenceService,
		Profiles:     supabase.NewProfileStore(store),
	}, authenticator, collector, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Hot-reload is a development convenience; production restarts instead.
	if path := os.Getenv("CONFIG_FILE"); cfg.IsDevelopment() && path != "" {
		watcher, err := config.NewWatcher(cfg, path, logger)
		if err != nil {
			logger.Warn("config watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
