// hhradar — hh.ru vacancy scraper and filterable listing API.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hhradar/internal/collector"
	"hhradar/internal/config"
	"hhradar/internal/db"
	"hhradar/internal/hh"
	"hhradar/internal/scheduler"
	"hhradar/internal/server"
	"hhradar/internal/service"
	"hhradar/internal/store"
)

func main() {
	// .env is a local-development convenience; absence is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		logger.Info("redis not configured, caching disabled")
	}

	client := hh.NewClient(cfg.HHBaseURL, logger)
	mapper := hh.NewMapper(client, logger)
	coll := collector.New(client, mapper, logger)
	st := store.New(pool, logger)
	svc := service.New(coll, st, rdb, logger)

	if cfg.CollectIntervalHours > 0 {
		sched := scheduler.New(svc, cfg.CollectQuery, cfg.CollectCount, cfg.CollectIntervalHours, logger)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("scheduler: %v", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(svc, logger).Router(),
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
