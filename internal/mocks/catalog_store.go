package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// MockCatalogStore implements store.CatalogStore for testing
type MockCatalogStore struct {
	// Function fields for customizable behavior
	ListMarksFn           func(ctx context.Context) ([]domain.VehicleMark, error)
	ListMarksWithModelsFn func(ctx context.Context) ([]domain.MarkWithModels, error)
	ListModelsByMarkFn    func(ctx context.Context, markID uuid.UUID) ([]domain.VehicleModel, error)
	GetMarkByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.VehicleMark, error)
	GetModelByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.VehicleModel, error)
	FindMarkIDsByNameFn   func(ctx context.Context, term string) ([]uuid.UUID, error)
	FindModelIDsByNameFn  func(ctx context.Context, term string) ([]uuid.UUID, error)

	// Data for default implementation
	Marks  []domain.VehicleMark
	Models []domain.VehicleModel
}

// NewMockCatalogStore creates a new mock store with initialized defaults
func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{}
}

// Ensure MockCatalogStore implements store.CatalogStore
var _ store.CatalogStore = (*MockCatalogStore)(nil)

// AddMark registers a mark in the default data set and returns its ID.
func (m *MockCatalogStore) AddMark(name string) uuid.UUID {
	mark := domain.VehicleMark{ID: uuid.New(), Name: name}
	m.Marks = append(m.Marks, mark)
	return mark.ID
}

// AddModel registers a model under a mark and returns its ID.
func (m *MockCatalogStore) AddModel(name string, markID uuid.UUID) uuid.UUID {
	model := domain.VehicleModel{ID: uuid.New(), Name: name, MarkID: markID}
	m.Models = append(m.Models, model)
	return model.ID
}

// ListMarks implements the CatalogStore interface
func (m *MockCatalogStore) ListMarks(ctx context.Context) ([]domain.VehicleMark, error) {
	if m.ListMarksFn != nil {
		return m.ListMarksFn(ctx)
	}

	marks := append([]domain.VehicleMark(nil), m.Marks...)
	sort.Slice(marks, func(i, j int) bool { return marks[i].Name < marks[j].Name })
	return marks, nil
}

// ListMarksWithModels implements the CatalogStore interface
func (m *MockCatalogStore) ListMarksWithModels(ctx context.Context) ([]domain.MarkWithModels, error) {
	if m.ListMarksWithModelsFn != nil {
		return m.ListMarksWithModelsFn(ctx)
	}

	marks, _ := m.ListMarks(ctx)
	result := make([]domain.MarkWithModels, 0, len(marks))
	for _, mark := range marks {
		models, _ := m.ListModelsByMark(ctx, mark.ID)
		result = append(result, domain.MarkWithModels{VehicleMark: mark, Models: models})
	}
	return result, nil
}

// ListModelsByMark implements the CatalogStore interface
func (m *MockCatalogStore) ListModelsByMark(ctx context.Context, markID uuid.UUID) ([]domain.VehicleModel, error) {
	if m.ListModelsByMarkFn != nil {
		return m.ListModelsByMarkFn(ctx, markID)
	}

	models := make([]domain.VehicleModel, 0)
	for _, model := range m.Models {
		if model.MarkID == markID {
			models = append(models, model)
		}
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// GetMarkByID implements the CatalogStore interface
func (m *MockCatalogStore) GetMarkByID(ctx context.Context, id uuid.UUID) (*domain.VehicleMark, error) {
	if m.GetMarkByIDFn != nil {
		return m.GetMarkByIDFn(ctx, id)
	}

	for i := range m.Marks {
		if m.Marks[i].ID == id {
			return &m.Marks[i], nil
		}
	}
	return nil, store.ErrMarkNotFound
}

// GetModelByID implements the CatalogStore interface
func (m *MockCatalogStore) GetModelByID(ctx context.Context, id uuid.UUID) (*domain.VehicleModel, error) {
	if m.GetModelByIDFn != nil {
		return m.GetModelByIDFn(ctx, id)
	}

	for i := range m.Models {
		if m.Models[i].ID == id {
			return &m.Models[i], nil
		}
	}
	return nil, store.ErrModelNotFound
}

// FindMarkIDsByName implements the CatalogStore interface
func (m *MockCatalogStore) FindMarkIDsByName(ctx context.Context, term string) ([]uuid.UUID, error) {
	if m.FindMarkIDsByNameFn != nil {
		return m.FindMarkIDsByNameFn(ctx, term)
	}

	var ids []uuid.UUID
	for _, mark := range m.Marks {
		if strings.Contains(strings.ToLower(mark.Name), strings.ToLower(term)) {
			ids = append(ids, mark.ID)
		}
	}
	return ids, nil
}

// FindModelIDsByName implements the CatalogStore interface
func (m *MockCatalogStore) FindModelIDsByName(ctx context.Context, term string) ([]uuid.UUID, error) {
	if m.FindModelIDsByNameFn != nil {
		return m.FindModelIDsByNameFn(ctx, term)
	}

	var ids []uuid.UUID
	for _, model := range m.Models {
		if strings.Contains(strings.ToLower(model.Name), strings.ToLower(term)) {
			ids = append(ids, model.ID)
		}
	}
	return ids, nil
}
