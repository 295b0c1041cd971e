package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VehicleStatus represents the operational state of a vehicle.
type VehicleStatus string

// Valid vehicle statuses.
const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusService     VehicleStatus = "service"
)

// MinVehicleYear is the earliest accepted manufacture year.
const MinVehicleYear = 1900

// Vehicle-specific validation errors.
var (
	ErrEmptyVehicleID       = errors.New("vehicle ID cannot be empty")
	ErrMissingVehicleFields = errors.New("mark, model and year are required")
	ErrInvalidVehicleStatus = errors.New("status must be one of: available, maintenance, service")
	ErrInvalidVehicleYear   = errors.New("year is out of range")
)

// IsValid reports whether the status is one of the three known values.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusMaintenance, VehicleStatusService:
		return true
	}
	return false
}

// MaxVehicleYear returns the latest accepted manufacture year (next calendar
// year, so vehicles from upcoming model years can be registered).
func MaxVehicleYear(now time.Time) int {
	return now.Year() + 1
}

// Vehicle represents a fleet vehicle. Mark, model, creator and modifier are
// referenced by ID; the *Name and *Email fields are display copies resolved by
// the store at read time and never written back.
type Vehicle struct {
	ID        uuid.UUID     `json:"id"`
	VehicleID string        `json:"vehicle_id"` // Human-readable identifier (VEH-NNNN)
	MarkID    uuid.UUID     `json:"mark_id"`
	ModelID   uuid.UUID     `json:"model_id"`
	Year      int           `json:"year"`
	Status    VehicleStatus `json:"status"`
	CreatedBy uuid.UUID     `json:"created_by"`
	UpdatedBy uuid.UUID     `json:"updated_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Resolved references (read-only, populated on fetch).
	MarkName       string `json:"mark_name,omitempty"`
	ModelName      string `json:"model_name,omitempty"`
	CreatedByEmail string `json:"created_by_email,omitempty"`
	UpdatedByEmail string `json:"updated_by_email,omitempty"`
}

// Validate checks if the Vehicle has valid data.
// Returns an error if any field fails validation.
func (v *Vehicle) Validate() error {
	if v.ID == uuid.Nil {
		return ErrEmptyVehicleID
	}
	if v.VehicleID == "" {
		return ErrEmptyVehicleID
	}
	if v.MarkID == uuid.Nil || v.ModelID == uuid.Nil || v.Year == 0 {
		return ErrMissingVehicleFields
	}
	if !v.Status.IsValid() {
		return ErrInvalidVehicleStatus
	}
	if max := MaxVehicleYear(time.Now()); v.Year < MinVehicleYear || v.Year > max {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidVehicleYear, MinVehicleYear, max)
	}
	return nil
}

// VehicleMark is a vehicle manufacturer/brand (e.g. Toyota).
// Marks are seeded data and read-only at runtime.
type VehicleMark struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// VehicleModel is a named vehicle line belonging to exactly one mark
// (e.g. Corolla under Toyota). The (mark, name) pair is unique.
type VehicleModel struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	MarkID   uuid.UUID `json:"mark_id"`
	MarkName string    `json:"mark_name,omitempty"` // Resolved on fetch
}

// MarkWithModels groups a mark with all of its models for catalog listings.
type MarkWithModels struct {
	VehicleMark
	Models []VehicleModel `json:"models"`
}
