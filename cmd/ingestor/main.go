package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/user/ytharvest-go/internal/config"
	"github.com/user/ytharvest-go/internal/ingest"
	"github.com/user/ytharvest-go/internal/server"
	"github.com/user/ytharvest-go/internal/store"
	"github.com/user/ytharvest-go/internal/youtube"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 30 * time.Second
)

func main() {
	// Initialize structured JSON logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Initialize MySQL store
	mysqlStore, err := store.NewMySQLStore(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Database connection established")

	// Initialize YouTube API client
	client, err := youtube.NewClient(&youtube.Config{
		APIKey:     cfg.API.Key,
		BaseURL:    cfg.API.BaseURL,
		PageSize:   cfg.API.PageSize,
		RateLimit:  cfg.API.RateLimit,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create API client")
	}
	log.Info().Msg("API client initialized")

	// Initialize ingestion service
	svc := ingest.NewService(mysqlStore, client, &cfg.Ingest)
	log.Info().Msg("Ingestion service initialized")

	// Initialize HTTP server
	httpServer := server.NewServer(mysqlStore, svc)

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in goroutine
	go func() {
		if err := httpServer.Start(cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	log.Info().Msg("Ingestor started successfully")

	// Wait for shutdown signal
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	log.Info().Msg("Starting graceful shutdown...")

	// 1. Stop HTTP server so no new stage runs begin
	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	} else {
		log.Info().Msg("HTTP server stopped")
	}

	// 2. Close database connection pool
	if err := mysqlStore.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	} else {
		log.Info().Msg("Database connection closed")
	}

	// Check if shutdown completed within timeout
	select {
	case <-shutdownCtx.Done():
		if shutdownCtx.Err() == context.DeadlineExceeded {
			log.Warn().Msg("Shutdown timeout exceeded, forcing exit")
		}
	default:
		log.Info().Msg("Graceful shutdown completed")
	}
}
