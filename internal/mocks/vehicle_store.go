package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// MockVehicleStore implements store.VehicleStore for testing
type MockVehicleStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, vehicle *domain.Vehicle) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	UpdateFn        func(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatusFn  func(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, updatedBy uuid.UUID) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ListFn          func(ctx context.Context, filter store.VehicleFilter, sortBy store.VehicleSortField, descending bool, offset, limit int) ([]*domain.Vehicle, error)
	CountFn         func(ctx context.Context, filter store.VehicleFilter) (int64, error)
	LastVehicleIDFn func(ctx context.Context) (string, error)
	MetricsFn       func(ctx context.Context) (store.VehicleMetrics, error)

	// Data for default implementation, keyed by primary key
	Vehicles map[uuid.UUID]*domain.Vehicle
}

// NewMockVehicleStore creates a new mock store with initialized defaults
func NewMockVehicleStore() *MockVehicleStore {
	return &MockVehicleStore{
		Vehicles: make(map[uuid.UUID]*domain.Vehicle),
	}
}

// Ensure MockVehicleStore implements store.VehicleStore
var _ store.VehicleStore = (*MockVehicleStore)(nil)

// Create implements the VehicleStore interface
func (m *MockVehicleStore) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, vehicle)
	}

	for _, existing := range m.Vehicles {
		if existing.VehicleID == vehicle.VehicleID {
			return store.ErrVehicleIDExists
		}
	}

	m.Vehicles[vehicle.ID] = vehicle
	return nil
}

// GetByID implements the VehicleStore interface
func (m *MockVehicleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	vehicle, exists := m.Vehicles[id]
	if !exists {
		return nil, store.ErrVehicleNotFound
	}

	return vehicle, nil
}

// Update implements the VehicleStore interface
func (m *MockVehicleStore) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, vehicle)
	}

	existing, exists := m.Vehicles[vehicle.ID]
	if !exists {
		return store.ErrVehicleNotFound
	}

	existing.MarkID = vehicle.MarkID
	existing.ModelID = vehicle.ModelID
	existing.Year = vehicle.Year
	existing.Status = vehicle.Status
	existing.UpdatedBy = vehicle.UpdatedBy
	return nil
}

// UpdateStatus implements the VehicleStore interface
func (m *MockVehicleStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.VehicleStatus,
	updatedBy uuid.UUID,
) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, updatedBy)
	}

	vehicle, exists := m.Vehicles[id]
	if !exists {
		return store.ErrVehicleNotFound
	}

	vehicle.Status = status
	vehicle.UpdatedBy = updatedBy
	return nil
}

// Delete implements the VehicleStore interface
func (m *MockVehicleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Vehicles[id]; !exists {
		return store.ErrVehicleNotFound
	}

	delete(m.Vehicles, id)
	return nil
}

// List implements the VehicleStore interface
func (m *MockVehicleStore) List(
	ctx context.Context,
	filter store.VehicleFilter,
	sortBy store.VehicleSortField,
	descending bool,
	offset, limit int,
) ([]*domain.Vehicle, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, sortBy, descending, offset, limit)
	}

	vehicles := make([]*domain.Vehicle, 0, len(m.Vehicles))
	for _, vehicle := range m.Vehicles {
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

// Count implements the VehicleStore interface
func (m *MockVehicleStore) Count(ctx context.Context, filter store.VehicleFilter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}

	return int64(len(m.Vehicles)), nil
}

// LastVehicleID implements the VehicleStore interface
func (m *MockVehicleStore) LastVehicleID(ctx context.Context) (string, error) {
	if m.LastVehicleIDFn != nil {
		return m.LastVehicleIDFn(ctx)
	}

	var last string
	for _, vehicle := range m.Vehicles {
		if vehicle.VehicleID > last {
			last = vehicle.VehicleID
		}
	}
	return last, nil
}

// Metrics implements the VehicleStore interface
func (m *MockVehicleStore) Metrics(ctx context.Context) (store.VehicleMetrics, error) {
	if m.MetricsFn != nil {
		return m.MetricsFn(ctx)
	}

	var metrics store.VehicleMetrics
	for _, vehicle := range m.Vehicles {
		metrics.TotalVehicles++
		if vehicle.Status == domain.VehicleStatusAvailable {
			metrics.ActiveVehicles++
		}
	}
	return metrics, nil
}
