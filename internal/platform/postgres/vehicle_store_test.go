package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/store"
)

func TestBuildVehicleWhere(t *testing.T) {
	t.Parallel()

	markID := uuid.New()
	modelA := uuid.New()
	modelB := uuid.New()

	t.Run("empty filter", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("search alone matches only the identifier leg", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{Search: "veh"})
		assert.Equal(t, "(v.vehicle_id ILIKE $1)", where)
		assert.Equal(t, []any{"%veh%"}, args)
	})

	t.Run("search legs are OR-ed", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{
			Search:   "toy",
			MarkIDs:  []uuid.UUID{markID},
			ModelIDs: []uuid.UUID{modelA, modelB},
		})
		assert.Equal(t,
			"(v.mark_id IN ($1) OR v.model_id IN ($2, $3) OR v.vehicle_id ILIKE $4)",
			where)
		assert.Equal(t, []any{markID, modelA, modelB, "%toy%"}, args)
	})

	t.Run("year bounds are inclusive and AND-ed", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{YearFrom: 2015, YearTo: 2020})
		assert.Equal(t, "v.year >= $1 AND v.year <= $2", where)
		assert.Equal(t, []any{2015, 2020}, args)
	})

	t.Run("status filter", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{Status: domain.VehicleStatusService})
		assert.Equal(t, "v.status = $1", where)
		assert.Equal(t, []any{"service"}, args)
	})

	t.Run("search group AND-ed with remaining conditions", func(t *testing.T) {
		where, args := buildVehicleWhere(store.VehicleFilter{
			Search:   "corolla",
			ModelIDs: []uuid.UUID{modelA},
			YearFrom: 2018,
			Status:   domain.VehicleStatusAvailable,
		})
		assert.Equal(t,
			"(v.model_id IN ($1) OR v.vehicle_id ILIKE $2) AND v.year >= $3 AND v.status = $4",
			where)
		assert.Len(t, args, 4)
	})
}
