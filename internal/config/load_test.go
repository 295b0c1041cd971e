package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "a-test-signing-secret-of-sufficient-len"

func TestLoad(t *testing.T) {
	t.Run("loads from environment variables", func(t *testing.T) {
		t.Setenv("FLEET_DATABASE_URL", "postgres://localhost:5432/fleet_test")
		t.Setenv("FLEET_AUTH_JWT_SECRET", testJWTSecret)
		t.Setenv("FLEET_SERVER_PORT", "9090")
		t.Setenv("FLEET_SERVER_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, "postgres://localhost:5432/fleet_test", cfg.Database.URL)
		assert.Equal(t, testJWTSecret, cfg.Auth.JWTSecret)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("FLEET_DATABASE_URL", "postgres://localhost:5432/fleet_test")
		t.Setenv("FLEET_AUTH_JWT_SECRET", testJWTSecret)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 60*24*7, cfg.Auth.TokenLifetimeMinutes)
	})

	t.Run("missing database URL fails validation", func(t *testing.T) {
		t.Setenv("FLEET_DATABASE_URL", "")
		t.Setenv("FLEET_AUTH_JWT_SECRET", testJWTSecret)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short JWT secret fails validation", func(t *testing.T) {
		t.Setenv("FLEET_DATABASE_URL", "postgres://localhost:5432/fleet_test")
		t.Setenv("FLEET_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown log level fails validation", func(t *testing.T) {
		t.Setenv("FLEET_DATABASE_URL", "postgres://localhost:5432/fleet_test")
		t.Setenv("FLEET_AUTH_JWT_SECRET", testJWTSecret)
		t.Setenv("FLEET_SERVER_LOG_LEVEL", "loud")

		_, err := Load()
		assert.Error(t, err)
	})
}
