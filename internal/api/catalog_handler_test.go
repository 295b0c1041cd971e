package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/mocks"
	"github.com/fleetdesk/fleet-api/internal/service"
)

func newCatalogRouter(catalog *mocks.MockCatalogStore) chi.Router {
	handler := NewCatalogHandler(catalog, nil)

	r := chi.NewRouter()
	r.Get("/api/vehicle-marks", handler.ListMarks)
	r.Get("/api/vehicle-marks/with-models", handler.ListMarksWithModels)
	r.Get("/api/vehicle-marks/{markId}/models", handler.ListModels)
	return r
}

func getCatalog(t *testing.T, router chi.Router, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var env envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&env))
	return recorder, env
}

func TestListMarks(t *testing.T) {
	t.Parallel()

	catalog := mocks.NewMockCatalogStore()
	catalog.AddMark("Toyota")
	catalog.AddMark("Audi")
	router := newCatalogRouter(catalog)

	recorder, env := getCatalog(t, router, "/api/vehicle-marks")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)

	var marks []domain.VehicleMark
	require.NoError(t, json.Unmarshal(env.Data, &marks))
	require.Len(t, marks, 2)
	assert.Equal(t, "Audi", marks[0].Name)
	assert.Equal(t, "Toyota", marks[1].Name)
}

func TestListMarksWithModels(t *testing.T) {
	t.Parallel()

	catalog := mocks.NewMockCatalogStore()
	toyota := catalog.AddMark("Toyota")
	catalog.AddModel("Corolla", toyota)
	catalog.AddModel("Camry", toyota)
	catalog.AddMark("Audi")
	router := newCatalogRouter(catalog)

	recorder, env := getCatalog(t, router, "/api/vehicle-marks/with-models")
	require.Equal(t, http.StatusOK, recorder.Code)

	var marks []domain.MarkWithModels
	require.NoError(t, json.Unmarshal(env.Data, &marks))
	require.Len(t, marks, 2)

	assert.Equal(t, "Audi", marks[0].Name)
	assert.Empty(t, marks[0].Models)

	assert.Equal(t, "Toyota", marks[1].Name)
	require.Len(t, marks[1].Models, 2)
	assert.Equal(t, "Camry", marks[1].Models[0].Name)
	assert.Equal(t, "Corolla", marks[1].Models[1].Name)
}

func TestListModels(t *testing.T) {
	t.Parallel()

	catalog := mocks.NewMockCatalogStore()
	toyota := catalog.AddMark("Toyota")
	catalog.AddModel("Corolla", toyota)
	router := newCatalogRouter(catalog)

	t.Run("models of a mark", func(t *testing.T) {
		recorder, env := getCatalog(t, router, "/api/vehicle-marks/"+toyota.String()+"/models")
		require.Equal(t, http.StatusOK, recorder.Code)

		var models []domain.VehicleModel
		require.NoError(t, json.Unmarshal(env.Data, &models))
		require.Len(t, models, 1)
		assert.Equal(t, "Corolla", models[0].Name)
	})

	t.Run("unknown mark yields an empty list", func(t *testing.T) {
		recorder, env := getCatalog(t, router, "/api/vehicle-marks/"+uuid.New().String()+"/models")
		require.Equal(t, http.StatusOK, recorder.Code)

		var models []domain.VehicleModel
		require.NoError(t, json.Unmarshal(env.Data, &models))
		assert.Empty(t, models)
	})

	t.Run("malformed mark id is a 400", func(t *testing.T) {
		recorder, env := getCatalog(t, router, "/api/vehicle-marks/not-a-uuid/models")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, env.Success)
	})
}

func TestDashboardMetricsHandler(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	users.Users["a@example.com"] = &domain.User{ID: uuid.New(), Email: "a@example.com"}

	vehicles := mocks.NewMockVehicleStore()
	id := uuid.New()
	vehicles.Vehicles[id] = &domain.Vehicle{ID: id, VehicleID: "VEH-0001", Status: domain.VehicleStatusAvailable}

	handler := NewDashboardHandler(service.NewDashboardService(users, vehicles, nil), nil)

	req := httptest.NewRequest("GET", "/api/dashboard/metrics", nil)
	recorder := httptest.NewRecorder()
	handler.Metrics(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var env envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&env))
	assert.True(t, env.Success)

	var metrics service.DashboardMetrics
	require.NoError(t, json.Unmarshal(env.Data, &metrics))
	assert.Equal(t, int64(1), metrics.TotalUsers)
	assert.Equal(t, int64(1), metrics.TotalVehicles)
	assert.Equal(t, int64(1), metrics.ActiveVehicles)
}
