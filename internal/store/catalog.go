package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/fleetdesk/fleet-api/internal/domain"
)

// CatalogStore defines read access to the vehicle mark/model reference
// catalog. The catalog is seeded by migrations and never mutated at runtime.
type CatalogStore interface {
	// ListMarks returns all marks sorted by name.
	ListMarks(ctx context.Context) ([]domain.VehicleMark, error)

	// ListMarksWithModels returns all marks sorted by name, each with its
	// models (also sorted by name) nested.
	ListMarksWithModels(ctx context.Context) ([]domain.MarkWithModels, error)

	// ListModelsByMark returns the models of one mark sorted by name, with the
	// mark name resolved. Returns an empty slice for an unknown mark.
	ListModelsByMark(ctx context.Context, markID uuid.UUID) ([]domain.VehicleModel, error)

	// GetMarkByID retrieves a single mark.
	// Returns ErrMarkNotFound if it does not exist.
	GetMarkByID(ctx context.Context, id uuid.UUID) (*domain.VehicleMark, error)

	// GetModelByID retrieves a single model.
	// Returns ErrModelNotFound if it does not exist.
	GetModelByID(ctx context.Context, id uuid.UUID) (*domain.VehicleModel, error)

	// FindMarkIDsByName returns the IDs of marks whose name contains the term
	// as a case-insensitive substring.
	FindMarkIDsByName(ctx context.Context, term string) ([]uuid.UUID, error)

	// FindModelIDsByName returns the IDs of models whose name contains the
	// term as a case-insensitive substring.
	FindModelIDsByName(ctx context.Context, term string) ([]uuid.UUID, error)
}
