package api

import (
	"errors"
	"net/http"

	"github.com/fleetdesk/fleet-api/internal/api/shared"
	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/service/auth"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors. Bad login credentials deliberately map to 400,
	// not 401, so that clients treat them as a form error.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrVehicleNotFound),
		errors.Is(err, store.ErrMarkNotFound),
		errors.Is(err, store.ErrModelNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrVehicleIDExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrVehicleNotFound):
		return "Vehicle not found"

	case errors.Is(err, store.ErrMarkNotFound):
		return "Mark not found"

	case errors.Is(err, store.ErrModelNotFound):
		return "Model not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrVehicleIDExists):
		return "Vehicle identifier already exists"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrInvalidArgument):
		return "Invalid request parameters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error envelope for a service-layer error. The
// status code and client-facing message are derived from the error type;
// fallbackMessage overrides the derived message when non-empty and the
// error carries no safe message of its own.
//
// Validation errors additionally surface their field details in the
// envelope's errors list.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == "An unexpected error occurred" && fallbackMessage != "" {
		message = fallbackMessage
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		shared.RespondWithFieldErrors(w, r, status, message,
			[]string{validationErr.Error()})
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
