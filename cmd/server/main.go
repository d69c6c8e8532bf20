package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmorales-dev/tienda-sync/config"
	"github.com/rmorales-dev/tienda-sync/internal/assets"
	"github.com/rmorales-dev/tienda-sync/internal/catalog"
	"github.com/rmorales-dev/tienda-sync/internal/controller"
	"github.com/rmorales-dev/tienda-sync/internal/projection"
	"github.com/rmorales-dev/tienda-sync/internal/repository"
	"github.com/rmorales-dev/tienda-sync/internal/router"
	"github.com/rmorales-dev/tienda-sync/internal/scheduler"
	"github.com/rmorales-dev/tienda-sync/internal/service"
	"github.com/rmorales-dev/tienda-sync/internal/storage"
	"github.com/rmorales-dev/tienda-sync/internal/store"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting tienda-sync", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// The store handle is owned here and handed to the engines; nothing
	// reaches it through package state.
	db, err := store.Open(&cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open local store", err)
	}
	defer func() {
		if err := store.Close(db); err != nil {
			logger.Error("Failed to close local store", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seeding completes before the first read is served.
	if err := store.EnsureSeeded(db); err != nil {
		logger.Fatal("Failed to seed local store", err)
	}

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)

	remote := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	broker := projection.NewBroker()
	projector := projection.NewProjector(broker, productRepo, cartRepo)

	catalogService := service.NewCatalogService(productRepo, remote, broker)
	cartService := service.NewCartService(cartRepo, broker)

	resolver := assets.NewResolver(cfg.S3.BaseURL)
	imageStorage := storage.NewImageStorage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	productController := controller.NewProductController(catalogService, resolver)
	cartController := controller.NewCartController(cartService, catalogService, resolver)
	streamController := controller.NewStreamController(projector)
	uploadController := controller.NewUploadController(imageStorage)

	if cfg.Sync.RefreshEnabled {
		refresher := scheduler.NewRefreshScheduler(catalogService, cfg.Sync.RefreshSchedule)
		if err := refresher.Start(); err != nil {
			logger.Fatal("Failed to start catalog refresh scheduler", err)
		}
		defer refresher.Stop()
	}

	r := router.NewRouter(
		productController,
		cartController,
		streamController,
		uploadController,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
