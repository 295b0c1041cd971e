package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetdesk/fleet-api/internal/config"
	"github.com/fleetdesk/fleet-api/internal/platform/email"
	"github.com/fleetdesk/fleet-api/internal/platform/postgres"
	"github.com/fleetdesk/fleet-api/internal/service"
	"github.com/fleetdesk/fleet-api/internal/service/auth"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	vehicleStore store.VehicleStore
	catalogStore store.CatalogStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	emailSender      email.Sender
	userService      service.UserService
	vehicleService   service.VehicleService
	dashboardService service.DashboardService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()
	app.emailSender = email.NewLogSender(cfg.Email, logger)

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.vehicleStore = postgres.NewPostgresVehicleStore(db, logger)
	app.catalogStore = postgres.NewPostgresCatalogStore(db, logger)

	app.userService = service.NewUserService(
		app.userStore,
		app.passwordVerifier,
		app.emailSender,
		logger,
	)
	app.vehicleService = service.NewVehicleService(
		app.vehicleStore,
		app.catalogStore,
		logger,
	)
	app.dashboardService = service.NewDashboardService(
		app.userStore,
		app.vehicleStore,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
