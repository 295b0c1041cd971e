// Package main implements the entry point for the fleet API server,
// which manages a vehicle fleet: user accounts, the vehicle registry,
// the marks/models reference catalog, and dashboard metrics.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/fleetdesk/fleet-api/internal/config"
	"github.com/fleetdesk/fleet-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fleet-api: %v", err)
	}
}

// run wires configuration, logging, the database, and the application
// together, then serves until shutdown.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
