package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/fleetdesk/fleet-api/internal/domain"
)

// VehicleSortField identifies a column the vehicle listing can be ordered by.
// Only fields stored on the vehicle row itself appear here; relation-backed
// sort keys (mark/model name) are substituted with CreatedAt by the caller and
// re-sorted in memory after the page is fetched.
type VehicleSortField string

// Sortable vehicle columns.
const (
	SortByVehicleID VehicleSortField = "vehicle_id"
	SortByYear      VehicleSortField = "year"
	SortByStatus    VehicleSortField = "status"
	SortByCreatedAt VehicleSortField = "created_at"
	SortByUpdatedAt VehicleSortField = "updated_at"
)

// VehicleFilter describes the predicate for listing and counting vehicles.
// The zero value matches all vehicles. When Search is non-empty the store
// matches vehicles whose mark ID is in MarkIDs, OR whose model ID is in
// ModelIDs, OR whose human-readable identifier contains Search
// (case-insensitive); that OR group is AND-ed with the remaining conditions.
type VehicleFilter struct {
	Search   string
	MarkIDs  []uuid.UUID
	ModelIDs []uuid.UUID
	YearFrom int                  // inclusive; 0 means unset
	YearTo   int                  // inclusive; 0 means unset
	Status   domain.VehicleStatus // empty means unset
}

// VehicleMetrics holds the dashboard aggregates computed over the fleet.
type VehicleMetrics struct {
	TotalVehicles  int64
	ActiveVehicles int64
}

// VehicleStore defines the interface for vehicle data persistence.
// All read methods resolve mark/model names and creator/modifier emails onto
// the returned vehicles.
type VehicleStore interface {
	// Create saves a new vehicle to the store.
	// Returns ErrVehicleIDExists if the human-readable identifier is taken
	// (retryable: reissue an identifier), and ErrInvalidEntity if a referenced
	// mark, model or user does not exist.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by its unique ID with references resolved.
	// Returns ErrVehicleNotFound if the vehicle does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// Update overwrites the mutable fields (mark, model, year, status,
	// modifier) of an existing vehicle. The creator and the human-readable
	// identifier are never changed.
	// Returns ErrVehicleNotFound if the vehicle does not exist.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateStatus changes only the status and the modifier of a vehicle.
	// Returns ErrVehicleNotFound if the vehicle does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, updatedBy uuid.UUID) error

	// Delete removes a vehicle by its ID. There is no soft delete.
	// Returns ErrVehicleNotFound if the vehicle does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of vehicles matching the filter, ordered by the
	// given column and direction, with references resolved.
	List(
		ctx context.Context,
		filter VehicleFilter,
		sortBy VehicleSortField,
		descending bool,
		offset, limit int,
	) ([]*domain.Vehicle, error)

	// Count returns the number of vehicles matching the filter, independent of
	// pagination and sorting.
	Count(ctx context.Context, filter VehicleFilter) (int64, error)

	// LastVehicleID returns the largest human-readable identifier currently in
	// the store (by descending identifier sort), or "" when no vehicles exist.
	LastVehicleID(ctx context.Context) (string, error)

	// Metrics returns the fleet-wide dashboard aggregates.
	Metrics(ctx context.Context) (VehicleMetrics, error)
}
