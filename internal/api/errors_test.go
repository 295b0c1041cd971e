package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/service/auth"
	"github.com/fleetdesk/fleet-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"vehicle not found", store.ErrVehicleNotFound, http.StatusNotFound},
		{"mark not found", store.ErrMarkNotFound, http.StatusNotFound},
		{"model not found", store.ErrModelNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"vehicle identifier exists", store.ErrVehicleIDExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid argument", domain.ErrInvalidArgument, http.StatusBadRequest},
		{"invalid ID", domain.ErrInvalidID, http.StatusBadRequest},
		{"bad credentials map to 400 not 401", domain.ErrInvalidCredentials, http.StatusBadRequest},
		{"wrapped error keeps its mapping", fmt.Errorf("context: %w", store.ErrVehicleNotFound), http.StatusNotFound},
		{"validation error struct", domain.NewValidationError("year", "is out of range", nil), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil-adjacent unknown", fmt.Errorf("wrapped: %w", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal details never leak", func(t *testing.T) {
		err := errors.New("pq: connection refused host=10.0.0.1 password=hunter2")
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(err))
	})

	t.Run("validation errors surface their field message", func(t *testing.T) {
		err := domain.NewValidationError("model", "does not belong to the specified mark", nil)
		assert.Equal(t, "model does not belong to the specified mark", GetSafeErrorMessage(err))
	})

	t.Run("known sentinels map to friendly text", func(t *testing.T) {
		assert.Equal(t, "Vehicle not found", GetSafeErrorMessage(store.ErrVehicleNotFound))
		assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "Invalid email or password", GetSafeErrorMessage(domain.ErrInvalidCredentials))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
