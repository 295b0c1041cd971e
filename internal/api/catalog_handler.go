package api

import (
	"log/slog"
	"net/http"

	"github.com/fleetdesk/fleet-api/internal/api/shared"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// CatalogHandler serves the read-only marks/models reference catalog.
type CatalogHandler struct {
	catalog store.CatalogStore
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(catalog store.CatalogStore, log *slog.Logger) *CatalogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogHandler{
		catalog: catalog,
		logger:  log.With("component", "catalog_handler"),
	}
}

// ListMarks handles GET /api/vehicle-marks.
func (h *CatalogHandler) ListMarks(w http.ResponseWriter, r *http.Request) {
	marks, err := h.catalog.ListMarks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list vehicle marks")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, marks)
}

// ListMarksWithModels handles GET /api/vehicle-marks/with-models.
func (h *CatalogHandler) ListMarksWithModels(w http.ResponseWriter, r *http.Request) {
	marks, err := h.catalog.ListMarksWithModels(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list vehicle marks with models")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, marks)
}

// ListModels handles GET /api/vehicle-marks/{markId}/models.
func (h *CatalogHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	markID, err := getPathUUID(r, "markId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	models, err := h.catalog.ListModelsByMark(r.Context(), markID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list vehicle models")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, models)
}
