package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkramos/gamestore-backend/config"
	"github.com/mkramos/gamestore-backend/internal/app/controller"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	"github.com/mkramos/gamestore-backend/internal/db"
	"github.com/mkramos/gamestore-backend/internal/router"
	"github.com/mkramos/gamestore-backend/internal/scheduler"
	"github.com/mkramos/gamestore-backend/internal/storage"
	"github.com/mkramos/gamestore-backend/pkg/gog"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"github.com/mkramos/gamestore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting GAMESTORE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize redis (optional, used to serialize populate runs)
	var syncLock service.SyncLock
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redis.Close()
		syncLock = redis.NewSyncLease("sync:populate:lease", 30*time.Minute)
	}

	// Remote catalog client
	gogClient, err := gog.NewClient(gog.Config{
		CatalogURL:  cfg.Catalog.CatalogURL,
		GamePageURL: cfg.Catalog.GamePageURL,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog client", err)
	}

	// Media object storage
	mediaStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	gameRepo := repository.NewGameRepository(db.GetDB())
	taxonomyRepo := repository.NewTaxonomyRepository(db.GetDB())
	mediaRepo := repository.NewMediaRepository(db.GetDB())

	// Initialize services
	gameService := service.NewGameService(gameRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	mediaService := service.NewMediaService(gogClient, mediaStorage, mediaRepo)
	populateService := service.NewPopulateService(
		gogClient,
		taxonomyService,
		mediaService,
		gameRepo,
		syncLock,
		cfg.Sync.WorkerLimit,
		cfg.Sync.ScreenshotLimit,
	)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)
	populateController := controller.NewPopulateController(populateService)

	// Setup router
	r := router.NewRouter(
		gameController,
		taxonomyController,
		populateController,
		cfg,
	)
	engine := r.Setup()

	// Periodic catalog sync (optional)
	syncScheduler := scheduler.NewSyncScheduler(populateService, cfg.Sync.Schedule)
	if err := syncScheduler.Start(); err != nil {
		logger.Fatal("Failed to start sync scheduler", err)
	}
	defer syncScheduler.Stop()

	// Start server in a goroutine
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

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
