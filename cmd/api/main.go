package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/api/internal/cache"
	"stockroom/api/internal/config"
	"stockroom/api/internal/database"
	"stockroom/api/internal/handlers"
	"stockroom/api/internal/jobs"
	"stockroom/api/internal/log"
	"stockroom/api/internal/mail"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/server"
	"stockroom/api/internal/storage"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.New(cfg.Environment)
	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer dbPool.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer redisClient.Close()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("bucket check failed, uploads may not work")
	}

	mailer := mail.NewSMTPMailer(cfg.Mail)

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, objectStore, mailer, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(repository.NewResetTokenRepository(dbPool), logger)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	scheduler.Stop(shutdownCtx)

	logger.Info().Msg("server exited")
	return nil
}
