package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fleetdesk/fleet-api/internal/api"
	apiMiddleware "github.com/fleetdesk/fleet-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.userService,
		app.jwtService,
		app.passwordVerifier,
	)
	vehicleHandler := api.NewVehicleHandler(app.vehicleService, app.logger)
	catalogHandler := api.NewCatalogHandler(app.catalogStore, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Health check endpoint (public)
		r.Get("/health", app.handleHealth)

		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/recovery-password", authHandler.RecoveryPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints
			r.Put("/auth/profile", authHandler.UpdateProfile)
			r.Put("/auth/change-password", authHandler.ChangePassword)

			// Vehicle endpoints
			r.Get("/vehicles", vehicleHandler.List)
			r.Post("/vehicles", vehicleHandler.Create)
			r.Get("/vehicles/{id}", vehicleHandler.Get)
			r.Put("/vehicles/{id}", vehicleHandler.Update)
			r.Patch("/vehicles/{id}/status", vehicleHandler.UpdateStatus)
			r.Delete("/vehicles/{id}", vehicleHandler.Delete)

			// Catalog endpoints
			r.Get("/vehicle-marks", catalogHandler.ListMarks)
			r.Get("/vehicle-marks/with-models", catalogHandler.ListMarksWithModels)
			r.Get("/vehicle-marks/{markId}/models", catalogHandler.ListModels)

			// Dashboard endpoints
			r.Get("/dashboard/metrics", dashboardHandler.Metrics)
		})
	})

	return r
}

// handleHealth reports server liveness. It does not touch the database.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	body := map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
