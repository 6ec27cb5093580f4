package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "moodfit/internal/adapter/http"
	"moodfit/internal/adapter/memory"
	"moodfit/internal/adapter/mongo"
	"moodfit/internal/adapter/postgres"
	"moodfit/internal/adapter/redis"
	"moodfit/internal/adapter/s3"
	"moodfit/internal/app"
	"moodfit/internal/config"
	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
	"moodfit/internal/observability"
)

func main() {
	cfg, err := config.LoadConfig(env("CONFIG_PATH", "."))
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// run wires the services and serves until a shutdown signal arrives or the
// listener fails. Every resource is released before it returns.
func run(cfg config.Config, logger *slog.Logger) error {
	kv, closeKV, err := openStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer closeKV()
	logger.Info("storage ready", "backend", cfg.Storage.Backend)

	store := eventstore.New(kv, logger)
	moods := app.NewMoodService(store, cfg.Mood.TTL)
	catalog := app.NewCatalogService(store, moods)

	sessionLog := eventstore.NewCollection[domain.WorkoutSession](store, eventstore.KeyWorkoutSessions)
	failureLog := eventstore.NewCollection[domain.FailureEntry](store, eventstore.KeyFailureEntries)
	moodLog := eventstore.NewCollection[domain.MoodEntry](store, eventstore.KeyMoodEntries)

	stats := app.NewStatsService(store, catalog, sessionLog, failureLog, logger)
	sessions := app.NewSessionService(store, catalog, moods, stats, cfg.Session.Tick, logger)
	defer sessions.Close()

	ctx := context.Background()
	if catalog.Seed(ctx) {
		logger.Info("seeded default workout catalog")
	}
	if closed := sessions.ReconcileOrphans(ctx, cfg.Session.AbandonAfter); len(closed) > 0 {
		logger.Info("closed orphaned sessions", "count", len(closed))
	}

	h := adapthttp.New(adapthttp.Services{
		Moods:     moods,
		Catalog:   catalog,
		Sessions:  sessions,
		Failures:  app.NewFailureService(store, stats),
		Stats:     stats,
		Analytics: app.NewAnalyticsService(moodLog, sessionLog, failureLog, stats),
		Data:      app.NewDataService(store, sessions, catalog),
	}, logger).Handler()

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	return serve(server, quit, logger)
}

// serve runs server until quit fires, then shuts it down gracefully. A
// listener failure is returned instead.
func serve(server *http.Server, quit <-chan os.Signal, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	return nil
}

// openStore connects the configured key-value backend and returns a func
// that releases it.
func openStore(ctx context.Context, cfg config.Config) (domain.KVStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), func() {}, nil
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.BackendRedis:
		st, err := redis.Open(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.BackendMongo:
		client, err := mongo.ConnectDB(cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		st := mongo.NewStore(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection)
		return st, func() { _ = mongo.DisconnectDB(client) }, nil
	case config.BackendS3:
		st, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
