package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/amaumene/popcornarr/internal/api"
	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/controllers"
	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/providers"
	"github.com/amaumene/popcornarr/internal/scheduler"
	"github.com/amaumene/popcornarr/internal/services/images"
	"github.com/amaumene/popcornarr/internal/services/trakt"
	"github.com/amaumene/popcornarr/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Popcornarr")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Load skip list
	skipList, err := utils.LoadSkipList(cfg.SkipListFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load skip list, continuing without it")
		skipList = &utils.SkipList{}
	} else {
		logger.Info("Skip list loaded")
	}

	// 5. Initialize services
	traktClient, err := trakt.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Trakt client: %w", err)
	}
	logger.Info("Trakt client initialized")

	imageService := images.NewService(cfg, logger)
	logger.Info("Image service initialized")

	// 6. Initialize controllers
	movieCtrl := controllers.NewMovieController(db, traktClient, imageService, logger)
	showCtrl := controllers.NewShowController(db, traktClient, imageService, logger)
	logger.Info("Controllers initialized")

	// 7. Build providers from the source catalog
	deps := providers.Deps{
		Movies:      movieCtrl,
		Shows:       showCtrl,
		SkipList:    skipList,
		Concurrency: cfg.ScrapeConcurrency,
		Logger:      logger,
	}

	var provs []providers.Provider
	for _, src := range config.Sources() {
		provider, err := providers.New(src, deps)
		if err != nil {
			return fmt.Errorf("failed to build provider for %s: %w", src.Name, err)
		}
		provs = append(provs, provider)
	}
	logger.WithField("sources", len(provs)).Info("Providers initialized")

	// 8. Initialize scheduler
	sched := scheduler.NewScheduler(provs, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 9. Initialize HTTP server
	server := api.NewServer(cfg, db, logger)

	// Start server in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 10. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Popcornarr is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Popcornarr stopped")
	return nil
}
