package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleet-api/internal/mocks"
	"github.com/fleetdesk/fleet-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		jwtService *mocks.MockJWTService
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing header",
			authHeader: "",
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authorization header required",
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid authorization format",
		},
		{
			name:       "missing token after scheme",
			authHeader: "Bearer",
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid authorization format",
		},
		{
			name:       "expired token",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token expired",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token",
		},
		{
			name:       "unexpected validation failure",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{ValidateErr: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Authentication error",
		},
		{
			name:       "valid token",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uuid.UUID
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/vehicles", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			NewAuthMiddleware(tt.jwtService).Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantError == "" {
				assert.True(t, nextCalled)
				assert.Equal(t, userID, gotUserID)
				return
			}

			assert.False(t, nextCalled)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
