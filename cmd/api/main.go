package main

// @title ProForma Service API
// @version 1.0.0
// @description Square-foot pro forma feasibility: per-site lookups, reference tables and asynchronous runs over stored parcels.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

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
	httpDelivery "github.com/proforma-service/internal/delivery/http"
	"github.com/proforma-service/internal/delivery/http/handler"
	"github.com/proforma-service/internal/pkg/logger"
	"github.com/proforma-service/internal/repository/cache"
	redisRepo "github.com/proforma-service/internal/repository/redis"
	"github.com/proforma-service/internal/usecase"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Logger
	log, err := logger.New(cfg.Log.Level, zap.String("service", "proforma-api"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ProForma Service",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Engine
	engine, err := app.LoadEngine(cfg, log)
	if err != nil {
		log.Fatal("Failed to build pro forma", zap.Error(err))
	}

	// 4. Site store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open site store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close site store", zap.Error(err))
		}
	}()
	log.Info("Site store connected", zap.String("backend", store.Backend))

	// 5. Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 6. Repositories and use cases
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)

	feasibilityUC, err := usecase.NewFeasibilityUseCase(engine, cacheRepo, log, cfg.Cache.FeasibilityCacheTTL)
	if err != nil {
		log.Fatal("Failed to initialize feasibility use case", zap.Error(err))
	}
	runUC := usecase.NewRunUseCase(feasibilityUC, store.Sites, store.Results, streamRepo, log)

	// 7. HTTP
	healthChecks := map[string]handler.HealthChecker{
		store.Backend: store,
		"redis":       redisClient,
	}
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewFeasibilityHandler(feasibilityUC, log),
		handler.NewReferenceHandler(feasibilityUC, log),
		handler.NewRunHandler(runUC, log),
		handler.NewHealthHandler(healthChecks, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
