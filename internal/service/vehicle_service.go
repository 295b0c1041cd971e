package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// maxIDAllocationAttempts bounds how often a create retries after losing the
// identifier allocation race to a concurrent create.
const maxIDAllocationAttempts = 3

// Sort fields accepted by the listing API. mark and model live on joined
// entities and are re-sorted in memory after pagination.
var validSortFields = []string{"vehicleId", "mark", "model", "year", "status", "createdAt", "updatedAt"}

// sortFieldColumns maps API sort fields to vehicle row columns. mark/model are
// absent on purpose; they substitute created_at (see ListVehicles).
var sortFieldColumns = map[string]store.VehicleSortField{
	"vehicleId": store.SortByVehicleID,
	"year":      store.SortByYear,
	"status":    store.SortByStatus,
	"createdAt": store.SortByCreatedAt,
	"updatedAt": store.SortByUpdatedAt,
}

// ListFilters carries the optional listing filters as received from the query
// string. Year bounds and status are deliberately permissive: unparseable
// values are ignored rather than rejected.
type ListFilters struct {
	Search   string
	YearFrom string
	YearTo   string
	Status   string
}

// Pagination is the page metadata returned alongside every vehicle listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// VehiclePage is one page of vehicles plus its pagination metadata.
type VehiclePage struct {
	Vehicles   []*domain.Vehicle `json:"vehicles"`
	Pagination Pagination        `json:"pagination"`
}

// VehicleInput is the payload for creating or fully updating a vehicle.
// Mark and Model are catalog entity IDs.
type VehicleInput struct {
	Mark   string `json:"mark"`
	Model  string `json:"model"`
	Year   int    `json:"year"`
	Status string `json:"status"`
}

// VehicleService provides vehicle listing and mutation operations.
type VehicleService interface {
	// ListVehicles returns a filtered, sorted page of vehicles with resolved
	// references and pagination metadata. Invalid page/limit/sortBy/sortOrder
	// values are rejected; malformed year or status filters are ignored.
	ListVehicles(
		ctx context.Context,
		page, limit int,
		sortBy, sortOrder string,
		filters ListFilters,
	) (*VehiclePage, error)

	// GetVehicle fetches one vehicle by its ID with references resolved.
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)

	// CreateVehicle validates the input against the catalog, allocates the
	// next vehicle identifier, and persists the vehicle stamped with the
	// acting user as creator and modifier.
	CreateVehicle(ctx context.Context, input VehicleInput, actorID uuid.UUID) (*domain.Vehicle, error)

	// UpdateVehicle applies a full update to an existing vehicle. The creator
	// and identifier are preserved; the modifier is re-stamped.
	UpdateVehicle(ctx context.Context, id string, input VehicleInput, actorID uuid.UUID) (*domain.Vehicle, error)

	// UpdateVehicleStatus changes only the status and modifier of a vehicle.
	UpdateVehicleStatus(ctx context.Context, id, status string, actorID uuid.UUID) (*domain.Vehicle, error)

	// DeleteVehicle removes a vehicle permanently. No soft delete.
	DeleteVehicle(ctx context.Context, id string) error
}

// VehicleServiceImpl implements the VehicleService interface.
type VehicleServiceImpl struct {
	vehicles store.VehicleStore
	catalog  store.CatalogStore
	logger   *slog.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	vehicles store.VehicleStore,
	catalog store.CatalogStore,
	logger *slog.Logger,
) *VehicleServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleServiceImpl{
		vehicles: vehicles,
		catalog:  catalog,
		logger:   logger.With("component", "vehicle_service"),
	}
}

// Ensure VehicleServiceImpl implements VehicleService interface
var _ VehicleService = (*VehicleServiceImpl)(nil)

// ListVehicles implements VehicleService.ListVehicles
//
// Relation-backed sorting (mark/model) is a scoping trade-off: the store sorts
// by created_at, paginates, and the returned page is re-sorted here by the
// joined name. The ordering is therefore only correct within a page, not
// globally across pages.
func (s *VehicleServiceImpl) ListVehicles(
	ctx context.Context,
	page, limit int,
	sortBy, sortOrder string,
	filters ListFilters,
) (*VehiclePage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive integers", domain.ErrInvalidArgument)
	}

	inMemorySort := sortBy == "mark" || sortBy == "model"
	column, knownColumn := sortFieldColumns[sortBy]
	if !knownColumn && !inMemorySort {
		return nil, fmt.Errorf("%w: sortBy must be one of: %s",
			domain.ErrInvalidArgument, strings.Join(validSortFields, ", "))
	}
	if inMemorySort {
		// The store cannot order by a joined name before pagination; use
		// creation time as the pre-pagination substitute.
		column = store.SortByCreatedAt
	}

	var descending bool
	switch strings.ToLower(sortOrder) {
	case "asc":
		descending = false
	case "desc":
		descending = true
	default:
		return nil, fmt.Errorf("%w: sortOrder must be 'asc' or 'desc'", domain.ErrInvalidArgument)
	}

	filter, err := s.buildFilter(ctx, filters)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit

	vehicles, err := s.vehicles.List(ctx, filter, column, descending, offset, limit)
	if err != nil {
		s.logger.Error("failed to list vehicles", "error", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	if inMemorySort {
		sortVehiclesByRelation(vehicles, sortBy, descending)
	}

	total, err := s.vehicles.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count vehicles", "error", err)
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &VehiclePage{
		Vehicles: vehicles,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	}, nil
}

// buildFilter translates the raw listing filters into a store predicate.
// A present search term is resolved against the catalog into mark and model
// ID sets; those two lookups are the only extra queries a listing issues.
func (s *VehicleServiceImpl) buildFilter(ctx context.Context, filters ListFilters) (store.VehicleFilter, error) {
	var filter store.VehicleFilter

	if search := strings.TrimSpace(filters.Search); search != "" {
		markIDs, err := s.catalog.FindMarkIDsByName(ctx, search)
		if err != nil {
			return filter, fmt.Errorf("failed to search marks: %w", err)
		}
		modelIDs, err := s.catalog.FindModelIDsByName(ctx, search)
		if err != nil {
			return filter, fmt.Errorf("failed to search models: %w", err)
		}

		filter.Search = search
		filter.MarkIDs = markIDs
		filter.ModelIDs = modelIDs
	}

	// Year bounds and status are permissive: malformed values are dropped.
	if filters.YearFrom != "" {
		if year, err := strconv.Atoi(filters.YearFrom); err == nil {
			filter.YearFrom = year
		}
	}
	if filters.YearTo != "" {
		if year, err := strconv.Atoi(filters.YearTo); err == nil {
			filter.YearTo = year
		}
	}
	if status := domain.VehicleStatus(strings.TrimSpace(filters.Status)); status.IsValid() {
		filter.Status = status
	}

	return filter, nil
}

// sortVehiclesByRelation re-sorts an already-paginated page by the resolved
// mark or model name using plain ordinal comparison. Ties are left unresolved.
func sortVehiclesByRelation(vehicles []*domain.Vehicle, sortBy string, descending bool) {
	name := func(v *domain.Vehicle) string {
		if sortBy == "mark" {
			return v.MarkName
		}
		return v.ModelName
	}

	sort.SliceStable(vehicles, func(i, j int) bool {
		if descending {
			return name(vehicles[i]) > name(vehicles[j])
		}
		return name(vehicles[i]) < name(vehicles[j])
	})
}

// parseVehicleUUID parses a vehicle primary key from its string form.
func parseVehicleUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid vehicle ID", domain.ErrInvalidID)
	}
	return parsed, nil
}

// GetVehicle implements VehicleService.GetVehicle
func (s *VehicleServiceImpl) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicleID, err := parseVehicleUUID(id)
	if err != nil {
		return nil, err
	}

	return s.vehicles.GetByID(ctx, vehicleID)
}

// validateInput checks the mutation payload against the domain rules and the
// catalog, returning the resolved mark/model IDs and the effective status.
func (s *VehicleServiceImpl) validateInput(
	ctx context.Context,
	input VehicleInput,
) (markID, modelID uuid.UUID, status domain.VehicleStatus, err error) {
	if input.Mark == "" || input.Model == "" || input.Year == 0 {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError("", "mark, model and year are required", nil)
	}

	markID, parseErr := uuid.Parse(input.Mark)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError("mark", "must be a valid ID", domain.ErrInvalidID)
	}

	modelID, parseErr = uuid.Parse(input.Model)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError("model", "must be a valid ID", domain.ErrInvalidID)
	}

	if _, err := s.catalog.GetMarkByID(ctx, markID); err != nil {
		if errors.Is(err, store.ErrMarkNotFound) {
			return uuid.Nil, uuid.Nil, "", domain.NewValidationError("mark", "the specified mark does not exist", nil)
		}
		return uuid.Nil, uuid.Nil, "", fmt.Errorf("failed to verify mark: %w", err)
	}

	model, err := s.catalog.GetModelByID(ctx, modelID)
	if err != nil {
		if errors.Is(err, store.ErrModelNotFound) {
			return uuid.Nil, uuid.Nil, "", domain.NewValidationError("model", "the specified model does not exist", nil)
		}
		return uuid.Nil, uuid.Nil, "", fmt.Errorf("failed to verify model: %w", err)
	}
	if model.MarkID != markID {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError("model", "does not belong to the specified mark", nil)
	}

	if max := domain.MaxVehicleYear(time.Now()); input.Year < domain.MinVehicleYear || input.Year > max {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError(
			"year", fmt.Sprintf("must be between %d and %d", domain.MinVehicleYear, max), nil)
	}

	status = domain.VehicleStatus(input.Status)
	if input.Status == "" {
		status = domain.VehicleStatusAvailable
	} else if !status.IsValid() {
		return uuid.Nil, uuid.Nil, "", domain.NewValidationError(
			"status", "must be one of: available, maintenance, service", nil)
	}

	return markID, modelID, status, nil
}

// CreateVehicle implements VehicleService.CreateVehicle
//
// Identifier allocation reads the current largest identifier and increments
// it, so two concurrent creates can collide on the unique constraint; when
// that happens the allocation is retried with a fresh read.
func (s *VehicleServiceImpl) CreateVehicle(
	ctx context.Context,
	input VehicleInput,
	actorID uuid.UUID,
) (*domain.Vehicle, error) {
	markID, modelID, status, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxIDAllocationAttempts; attempt++ {
		last, err := s.vehicles.LastVehicleID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read last vehicle identifier: %w", err)
		}

		now := time.Now().UTC()
		vehicle := &domain.Vehicle{
			ID:        uuid.New(),
			VehicleID: NextVehicleID(last),
			MarkID:    markID,
			ModelID:   modelID,
			Year:      input.Year,
			Status:    status,
			CreatedBy: actorID,
			UpdatedBy: actorID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = s.vehicles.Create(ctx, vehicle)
		if errors.Is(err, store.ErrVehicleIDExists) {
			s.logger.Warn("vehicle identifier collision, retrying",
				"vehicle_id", vehicle.VehicleID,
				"attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		// Re-read to resolve mark/model/user references for the response.
		return s.vehicles.GetByID(ctx, vehicle.ID)
	}

	return nil, fmt.Errorf("failed to allocate a unique vehicle identifier after %d attempts", maxIDAllocationAttempts)
}

// UpdateVehicle implements VehicleService.UpdateVehicle
func (s *VehicleServiceImpl) UpdateVehicle(
	ctx context.Context,
	id string,
	input VehicleInput,
	actorID uuid.UUID,
) (*domain.Vehicle, error) {
	markID, modelID, status, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	vehicleID, err := parseVehicleUUID(id)
	if err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ID:      vehicleID,
		MarkID:  markID,
		ModelID: modelID,
		Year:    input.Year,
		Status:  status,
		// CreatedBy and VehicleID are preserved by the store.
		UpdatedBy: actorID,
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return s.vehicles.GetByID(ctx, vehicleID)
}

// UpdateVehicleStatus implements VehicleService.UpdateVehicleStatus
func (s *VehicleServiceImpl) UpdateVehicleStatus(
	ctx context.Context,
	id, status string,
	actorID uuid.UUID,
) (*domain.Vehicle, error) {
	if status == "" {
		return nil, domain.NewValidationError("status", "is required", nil)
	}

	newStatus := domain.VehicleStatus(status)
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("status", "must be one of: available, maintenance, service", nil)
	}

	vehicleID, err := parseVehicleUUID(id)
	if err != nil {
		return nil, err
	}

	if err := s.vehicles.UpdateStatus(ctx, vehicleID, newStatus, actorID); err != nil {
		return nil, err
	}

	return s.vehicles.GetByID(ctx, vehicleID)
}

// DeleteVehicle implements VehicleService.DeleteVehicle
func (s *VehicleServiceImpl) DeleteVehicle(ctx context.Context, id string) error {
	vehicleID, err := parseVehicleUUID(id)
	if err != nil {
		return err
	}

	return s.vehicles.Delete(ctx, vehicleID)
}
