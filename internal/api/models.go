package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ForgotPasswordRequest defines the payload for starting password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RecoveryPasswordRequest defines the payload for completing password recovery.
type RecoveryPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
type UpdateProfileRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// UserResponse is the user shape returned by auth and profile endpoints.
// It never carries password material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse defines the successful response for register and login.
type AuthResponse struct {
	// Token is the JWT bearer token used for API authorization
	Token string `json:"token"`

	// User is the authenticated user's public profile
	User UserResponse `json:"user"`
}

// CreateVehicleRequest defines the payload for creating a vehicle.
// Mark and Model are catalog entity IDs; Status defaults to "available".
type CreateVehicleRequest struct {
	Mark   string `json:"mark"   validate:"required"`
	Model  string `json:"model"  validate:"required"`
	Year   int    `json:"year"   validate:"required"`
	Status string `json:"status" validate:"omitempty"`
}

// UpdateVehicleRequest defines the payload for a full vehicle update.
// Same shape as create; the identifier and creator are immutable.
type UpdateVehicleRequest = CreateVehicleRequest

// UpdateVehicleStatusRequest defines the payload for a status-only update.
type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
