package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portal-server/config"
	httpEngine "portal-server/internal/app/http"
	"portal-server/internal/cache"
	"portal-server/internal/logics"
	"portal-server/internal/repositories"
	"portal-server/internal/storage"
	"portal-server/pkg/errors"
	"portal-server/pkg/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger
	defer logger.Sync()

	clients, err := repositories.Init(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize backing clients", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := clients.Close(ctx); err != nil {
			logger.Error("Failed to close backing clients", zap.Error(err))
		}
	}()

	productRepo := repositories.NewProductRepository(clients.DB)
	settingsRepo := repositories.NewSettingsRepository(clients.DB)

	// Saved storage settings win over the config defaults.
	settings := storage.DefaultSettings(cfg.Storage)
	if saved, err := settingsRepo.Load(context.Background()); err == nil {
		settings = *saved
	} else if !errors.IsNotFound(err) {
		logger.Warn("Failed to load saved storage settings, using config defaults", zap.Error(err))
	}

	adapters, err := storage.NewManager(cfg.Storage, settings, logger)
	if err != nil {
		logger.Fatal("Failed to build storage adapter", zap.Error(err))
	}

	portfolioCache := cache.New(clients.Redis, logger)
	publisher := messaging.NewRedisClientFrom(clients.Redis)

	loader := logics.NewLoaderService(adapters, portfolioCache, productRepo, cfg.Storage.IndexPath, logger)
	merge := logics.NewMergeService(adapters, portfolioCache, productRepo, loader, publisher, logger)
	transfer := logics.NewTransferService(loader, merge, logger)
	settingsService := logics.NewSettingsService(settingsRepo, adapters, logger)

	server := httpEngine.NewServer(cfg, &httpEngine.Deps{
		Loader:   loader,
		Merge:    merge,
		Transfer: transfer,
		Settings: settingsService,
		Cache:    portfolioCache,
		Logger:   logger,
	})

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Server shut down successfully")
}
