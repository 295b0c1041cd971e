package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVehicleStatusIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, VehicleStatusAvailable.IsValid())
	assert.True(t, VehicleStatusMaintenance.IsValid())
	assert.True(t, VehicleStatusService.IsValid())

	assert.False(t, VehicleStatus("").IsValid())
	assert.False(t, VehicleStatus("sold").IsValid())
	assert.False(t, VehicleStatus("Available").IsValid(), "statuses are case-sensitive")
}

func TestMaxVehicleYear(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2027, MaxVehicleYear(now))
}

func TestVehicleValidate(t *testing.T) {
	t.Parallel()

	newValidVehicle := func() *Vehicle {
		return &Vehicle{
			ID:        uuid.New(),
			VehicleID: "VEH-0001",
			MarkID:    uuid.New(),
			ModelID:   uuid.New(),
			Year:      2021,
			Status:    VehicleStatusAvailable,
			CreatedBy: uuid.New(),
			UpdatedBy: uuid.New(),
		}
	}

	t.Run("valid vehicle", func(t *testing.T) {
		assert.NoError(t, newValidVehicle().Validate())
	})

	t.Run("missing identifier", func(t *testing.T) {
		v := newValidVehicle()
		v.VehicleID = ""
		assert.ErrorIs(t, v.Validate(), ErrEmptyVehicleID)
	})

	t.Run("missing mark", func(t *testing.T) {
		v := newValidVehicle()
		v.MarkID = uuid.Nil
		assert.ErrorIs(t, v.Validate(), ErrMissingVehicleFields)
	})

	t.Run("invalid status", func(t *testing.T) {
		v := newValidVehicle()
		v.Status = "parked"
		assert.ErrorIs(t, v.Validate(), ErrInvalidVehicleStatus)
	})

	t.Run("year below range", func(t *testing.T) {
		v := newValidVehicle()
		v.Year = 1899
		assert.ErrorIs(t, v.Validate(), ErrInvalidVehicleYear)
	})

	t.Run("year at lower bound", func(t *testing.T) {
		v := newValidVehicle()
		v.Year = 1900
		assert.NoError(t, v.Validate())
	})

	t.Run("next calendar year is accepted", func(t *testing.T) {
		v := newValidVehicle()
		v.Year = time.Now().Year() + 1
		assert.NoError(t, v.Validate())
	})

	t.Run("year beyond next calendar year", func(t *testing.T) {
		v := newValidVehicle()
		v.Year = time.Now().Year() + 2
		assert.ErrorIs(t, v.Validate(), ErrInvalidVehicleYear)
	})
}
