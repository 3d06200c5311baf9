package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"plantdefender/internal/cache"
	"plantdefender/internal/config"
	"plantdefender/internal/database"
	"plantdefender/internal/handlers"
	"plantdefender/internal/jobs"
	"plantdefender/internal/llm"
	"plantdefender/internal/log"
	"plantdefender/internal/queue"
	"plantdefender/internal/security"
	"plantdefender/internal/server"
	"plantdefender/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx := context.Background()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	var (
		redisClient *redis.Client
		publisher   *queue.Publisher
		events      service.ScanEvents
		scheduler   *jobs.Scheduler
	)
	if cfg.Queue.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		publisher = queue.NewPublisher(redisClient, cfg.Queue.Stream)
		events = publisher
		scheduler = jobs.NewScheduler(publisher, logger)
	}

	model, err := llm.New(ctx, cfg.AI)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.AI.Provider).Msg("failed to init ai client")
	}

	tokens := security.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	authService := service.NewAuthService(store.Users, tokens, logger)
	scanService := service.NewScanService(store.Scans, model, events, cfg.AI.Timeout, logger)

	handlerSet := handlers.NewHandlerSet(
		logger,
		cfg.Environment,
		authService,
		scanService,
		store,
		handlers.PingerFunc(func(ctx context.Context) error { return cache.Ping(ctx, redisClient) }),
	)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	if scheduler != nil {
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("scheduler start failed")
		}
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, store, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, store *database.Store, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	if err := store.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("store close error")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
