package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fleetdesk/fleet-api/internal/api/shared"
	"github.com/fleetdesk/fleet-api/internal/platform/logger"
	"github.com/fleetdesk/fleet-api/internal/service"
)

// Listing defaults applied when page/limit are absent from the query string.
const (
	defaultPage      = 1
	defaultPageLimit = 10
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
)

// VehicleHandler handles vehicle-related API requests.
type VehicleHandler struct {
	vehicleService service.VehicleService
	logger         *slog.Logger
}

// NewVehicleHandler creates a new VehicleHandler with the given dependencies.
func NewVehicleHandler(vehicleService service.VehicleService, log *slog.Logger) *VehicleHandler {
	if log == nil {
		log = slog.Default()
	}
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         log.With("component", "vehicle_handler"),
	}
}

// queryInt parses an integer query parameter, returning the fallback when the
// parameter is absent. A present but unparseable value is an error; paging
// parameters are validated strictly, unlike the year/status filters.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// List handles GET /api/vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sortBy")
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	sortOrder := query.Get("sortOrder")
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}

	filters := service.ListFilters{
		Search:   query.Get("search"),
		YearFrom: query.Get("yearFrom"),
		YearTo:   query.Get("yearTo"),
		Status:   query.Get("status"),
	}

	result, err := h.vehicleService.ListVehicles(r.Context(), page, limit, sortBy, sortOrder, filters)
	if err != nil {
		log.Debug("vehicle listing failed", "error", err)
		HandleAPIError(w, r, err, "Failed to list vehicles")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicleService.GetVehicle(r.Context(), urlParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get vehicle")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, vehicle)
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateVehicleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	input := service.VehicleInput{
		Mark:   req.Mark,
		Model:  req.Model,
		Year:   req.Year,
		Status: req.Status,
	}

	vehicle, err := h.vehicleService.CreateVehicle(r.Context(), input, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create vehicle")
		return
	}

	h.logger.Info("vehicle created",
		"vehicle_id", vehicle.VehicleID,
		"created_by", userID)

	shared.RespondWithData(w, r, http.StatusCreated, vehicle)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	input := service.VehicleInput{
		Mark:   req.Mark,
		Model:  req.Model,
		Year:   req.Year,
		Status: req.Status,
	}

	vehicle, err := h.vehicleService.UpdateVehicle(r.Context(), urlParam(r, "id"), input, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update vehicle")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, vehicle)
}

// UpdateStatus handles PATCH /api/vehicles/{id}/status.
func (h *VehicleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateVehicleStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicleStatus(r.Context(), urlParam(r, "id"), req.Status, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update vehicle status")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicleService.DeleteVehicle(r.Context(), urlParam(r, "id")); err != nil {
		HandleAPIError(w, r, err, "Failed to delete vehicle")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Vehicle deleted", nil)
}
