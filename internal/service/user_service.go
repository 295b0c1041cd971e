package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/platform/email"
	"github.com/fleetdesk/fleet-api/internal/service/auth"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// resetTokenLifetime is how long a password recovery token stays valid.
const resetTokenLifetime = time.Hour

// resetTokenBytes is the entropy of a recovery token (hex-encoded to 64 chars).
const resetTokenBytes = 32

// UserService provides profile and password management operations.
type UserService interface {
	// UpdateProfile changes the user's email address.
	// Returns store.ErrEmailExists when another user already holds the email.
	UpdateProfile(ctx context.Context, userID uuid.UUID, newEmail string) (*domain.User, error)

	// ChangePassword replaces the user's password after verifying the current
	// one. Returns domain.ErrInvalidCredentials when the current password does
	// not match.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// ForgotPassword starts the password recovery flow for the given email.
	// To avoid leaking which addresses are registered it succeeds silently
	// when the email is unknown.
	ForgotPassword(ctx context.Context, emailAddr string) error

	// RecoveryPassword sets a new password using a recovery token.
	// Returns a validation error when the token is unknown or expired.
	RecoveryPassword(ctx context.Context, token, newPassword string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users    store.UserStore
	verifier auth.PasswordVerifier
	mailer   email.Sender
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	verifier auth.PasswordVerifier,
	mailer email.Sender,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		verifier: verifier,
		mailer:   mailer,
		logger:   logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	newEmail string,
) (*domain.User, error) {
	if newEmail == "" {
		return nil, domain.NewValidationError("email", "is required", nil)
	}
	if !domain.ValidateEmailFormat(newEmail) {
		return nil, domain.NewValidationError("email", "has an invalid format", domain.ErrInvalidEmail)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newEmail = strings.ToLower(newEmail)

	// Reject the change when another account already holds the address.
	if newEmail != user.Email {
		if _, err := s.users.GetByEmail(ctx, newEmail); err == nil {
			return nil, store.ErrEmailExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
	}

	user.Email = newEmail
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword implements UserService.ChangePassword
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError("", "current password and new password are required", nil)
	}
	if len(newPassword) < 6 {
		return domain.NewValidationError("newPassword", "must be at least 6 characters long", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.verifier.Compare(user.HashedPassword, currentPassword); err != nil {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrInvalidCredentials)
	}

	user.Password = newPassword // hashed by the store on update
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user password changed", "user_id", userID)
	return nil
}

// ForgotPassword implements UserService.ForgotPassword
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return domain.NewValidationError("email", "is required", nil)
	}
	if !domain.ValidateEmailFormat(emailAddr) {
		return domain.NewValidationError("email", "has an invalid format", domain.ErrInvalidEmail)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(emailAddr))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Do not reveal whether the address is registered.
			s.logger.Debug("password recovery requested for unknown email")
			return nil
		}
		return err
	}

	tokenBytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)
	expires := time.Now().UTC().Add(resetTokenLifetime)

	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// The token is already persisted; a failed send just means the user
	// retries, so log instead of failing the request.
	if err := s.mailer.SendPasswordRecovery(ctx, user.Email, token); err != nil {
		s.logger.Error("failed to send password recovery email",
			"error", err,
			"user_id", user.ID)
	}

	return nil
}

// RecoveryPassword implements UserService.RecoveryPassword
func (s *UserServiceImpl) RecoveryPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.NewValidationError("", "token and new password are required", nil)
	}
	if len(newPassword) < 6 {
		return domain.NewValidationError("newPassword", "must be at least 6 characters long", nil)
	}

	user, err := s.users.GetByValidResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domain.NewValidationError("token", "is invalid or has expired", nil)
		}
		return err
	}

	user.Password = newPassword // hashed by the store on update
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset via recovery token", "user_id", user.ID)
	return nil
}
