package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contentpilot/viral-formats-bot/internal/analysis"
	"github.com/contentpilot/viral-formats-bot/internal/api"
	"github.com/contentpilot/viral-formats-bot/internal/config"
	"github.com/contentpilot/viral-formats-bot/internal/formatstore"
	"github.com/contentpilot/viral-formats-bot/internal/generator"
	"github.com/contentpilot/viral-formats-bot/internal/learning"
	"github.com/contentpilot/viral-formats-bot/internal/llm"
	"github.com/contentpilot/viral-formats-bot/internal/notifications"
	"github.com/contentpilot/viral-formats-bot/internal/scheduler"
	"github.com/contentpilot/viral-formats-bot/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Viral Formats Bot")

	// Initialize storage: Azure when an account is configured, in-memory otherwise
	var storageClient storage.StorageInterface
	if cfg.StorageAccount != "" {
		azure, err := storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize storage: %v", err)
		}
		storageClient = azure
	} else {
		logrus.Warn("AZURE_STORAGE_ACCOUNT not set, archives and snapshots will not survive restarts")
		storageClient = storage.NewMemoryStorage()
	}

	// Initialize the format store and analysis pipeline
	store := formatstore.NewStore()
	extractor := analysis.NewExtractor(cfg.TrendingTopics)
	analyzer := analysis.NewService(extractor, store)

	// Initialize notification services
	notificationService := notifications.NewService(cfg)

	// Initialize learning service and recover any persisted formats
	learningService := learning.NewService(cfg, analyzer, store, storageClient, notificationService)
	if err := learningService.RestoreSnapshot(); err != nil {
		logrus.Warnf("Snapshot restore failed, continuing with seeds: %v", err)
	}

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, learningService)

	// Start scheduler
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Draft generation, optionally polished through OpenAI
	gen := generator.New()
	polisher := llm.NewPolisher(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if polisher == nil {
		logrus.Info("OPENAI_API_KEY not set, draft polish disabled")
	}

	// Set up HTTP server
	handlers := api.NewHandlers(analyzer, store, gen, polisher, learningService)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Snapshot learned formats before exit
	if err := learningService.SnapshotStore(); err != nil {
		logrus.Errorf("Final store snapshot failed: %v", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
