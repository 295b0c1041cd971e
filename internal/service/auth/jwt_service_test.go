package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleet-api/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-to-use"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})

	t.Run("accepts a 32+ character secret", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
		})
		assert.NoError(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestJWTService(t)
		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "a-completely-different-signing-key-here",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, userID)
		require.NoError(t, err)

		svc := newTestJWTService(t)
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(t)

		issued := time.Now().Add(-2 * time.Hour)
		svc.timeFunc = func() time.Time { return issued }

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		// Move past the lifetime plus the allowed clock skew.
		svc.timeFunc = time.Now

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token within clock skew of expiry still validates", func(t *testing.T) {
		svc := newTestJWTService(t)

		issued := time.Now().Add(-61 * time.Minute)
		svc.timeFunc = func() time.Time { return issued }

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = time.Now

		// Expired one minute ago, inside the two minute skew allowance.
		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}
