// Package main implements the entry point for the CareCamp API server,
// which manages medical camps, participant registrations, payments and
// feedback.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/carecamp/carecamp-api/internal/config"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("carecamp-api: %v", err)
	}
}

// run loads configuration, wires the application and serves until shutdown.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"verifier", cfg.Auth.Verifier)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	return cfg, nil
}
