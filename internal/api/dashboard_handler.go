package api

import (
	"log/slog"
	"net/http"

	"github.com/fleetdesk/fleet-api/internal/api/shared"
	"github.com/fleetdesk/fleet-api/internal/service"
)

// DashboardHandler serves the dashboard metrics endpoint.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
func NewDashboardHandler(dashboardService service.DashboardService, log *slog.Logger) *DashboardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           log.With("component", "dashboard_handler"),
	}
}

// Metrics handles GET /api/dashboard/metrics.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.Metrics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute dashboard metrics")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, metrics)
}
