package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/proforma-service/internal/app"
	"github.com/proforma-service/internal/config"
	"github.com/proforma-service/internal/pkg/logger"
	"github.com/proforma-service/internal/repository/cache"
	redisRepo "github.com/proforma-service/internal/repository/redis"
	"github.com/proforma-service/internal/usecase"
	"github.com/proforma-service/internal/worker"
	"github.com/proforma-service/internal/worker/feasibility"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	log, err := logger.New(cfg.Log.Level, zap.String("service", "proforma-worker"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting run worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	engine, err := app.LoadEngine(cfg, log)
	if err != nil {
		log.Fatal("Failed to build pro forma", zap.Error(err))
	}

	openCtx, openCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := app.OpenStore(openCtx, cfg, log)
	openCancel()
	if err != nil {
		log.Fatal("Failed to open site store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close site store", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)

	feasibilityUC, err := usecase.NewFeasibilityUseCase(engine, cacheRepo, log, cfg.Cache.FeasibilityCacheTTL)
	if err != nil {
		log.Fatal("Failed to initialize feasibility use case", zap.Error(err))
	}
	runUC := usecase.NewRunUseCase(feasibilityUC, store.Sites, store.Results, streamRepo, log)

	runWorker := feasibility.NewRunWorker(
		streamRepo,
		runUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(runWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	// Stop lets an in-flight run finish before the context is cancelled
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
