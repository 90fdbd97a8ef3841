package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/adapter/memory"
	"fittrack/internal/adapter/postgres"
	redisrepo "fittrack/internal/adapter/redis"
	"fittrack/internal/adapter/sqlite"
	"fittrack/internal/app"
	"fittrack/internal/backup"
	"fittrack/internal/config"
	"fittrack/internal/domain"
	"fittrack/internal/logging"
	"fittrack/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer func() { _ = logCloser.Close() }()

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		_ = logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closer, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	slog.Info("storage ready", "backend", cfg.Storage.Backend)

	store := app.NewStore(repo)
	trackerSvc := app.NewTrackerService(store)
	dashboardSvc := app.NewDashboardService(store)
	chartsSvc := app.NewChartsService(store)
	transferSvc := app.NewTransferService(store)

	m := metrics.NewManager("fittrack", "server", prometheus.DefaultRegisterer)

	if cfg.Backup.Dir != "" {
		sched := backup.NewScheduler(transferSvc, cfg.Backup.Dir, store.Today, m)
		if err := sched.Start(cfg.Backup.Schedule); err != nil {
			return err
		}
		defer sched.Stop()
	}

	h := adapthttp.New(trackerSvc, dashboardSvc, chartsSvc, transferSvc, cfg.Server.WebDir).
		WithMetrics(m, prometheus.DefaultGatherer).
		WithRateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).
		Handler()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openRepository(ctx context.Context, cfg config.StorageConfig) (domain.FitnessRepository, io.Closer, error) {
	switch cfg.Backend {
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		return db, db, nil
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db, nil
	case config.StorageRedis:
		r, err := redisrepo.Dial(ctx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return nil, nil, fmt.Errorf("redis dial: %w", err)
		}
		return r, r, nil
	default:
		slog.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
