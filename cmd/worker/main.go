package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"plantdefender/internal/cache"
	"plantdefender/internal/config"
	"plantdefender/internal/database"
	"plantdefender/internal/log"
	"plantdefender/internal/queue"
	"plantdefender/internal/storage"
	"plantdefender/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Fatal().Msg("worker needs a shared store; memory driver is process-local")
	}

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}

	archive, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		logger.Fatal().Err(err).Str("bucket", cfg.Storage.BucketArchive).Msg("ensure bucket failed")
	}

	processor := tasks.NewProcessor(store.Scans, archive, cfg.Archive.Retention, logger)
	consumer := queue.NewConsumer(
		client,
		cfg.Queue.Stream,
		cfg.Queue.Group,
		cfg.Queue.Consumer,
		cfg.Queue.ClaimInterval,
		logger,
		processor,
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("consumer stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn().Msg("consumer did not stop in time")
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logger.Error().Err(err).Msg("store close error")
	}
	if err := client.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}
	logger.Info().Msg("worker exited cleanly")
}
