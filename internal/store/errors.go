package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrUserNotFound, ErrVehicleNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// constraint before being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrVehicleNotFound indicates that the requested vehicle does not exist in the store.
	ErrVehicleNotFound = fmt.Errorf("%w: vehicle", ErrNotFound)

	// ErrMarkNotFound indicates that the requested vehicle mark does not exist in the store.
	ErrMarkNotFound = fmt.Errorf("%w: vehicle mark", ErrNotFound)

	// ErrModelNotFound indicates that the requested vehicle model does not exist in the store.
	ErrModelNotFound = fmt.Errorf("%w: vehicle model", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrVehicleIDExists indicates that a vehicle with the given human-readable
	// identifier already exists. Callers allocating identifiers must treat this
	// as retryable: reissue a new identifier and try again.
	ErrVehicleIDExists = fmt.Errorf("%w: vehicle ID", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
