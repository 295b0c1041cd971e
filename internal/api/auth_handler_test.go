package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleet-api/internal/api/shared"
	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/mocks"
	"github.com/fleetdesk/fleet-api/internal/service"
)

// envelope mirrors the response body shape for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

func newAuthTestHandler(users *mocks.MockUserStore, verifier *mocks.MockPasswordVerifier) *AuthHandler {
	userService := service.NewUserService(users, verifier, &mocks.MockEmailSender{}, nil)
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	return NewAuthHandler(users, userService, jwtService, verifier)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler(recorder, req)

	var env envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&env))
	return recorder, env
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name:       "valid registration",
			payload:    map[string]interface{}{"email": "test@example.com", "password": "password123"},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name:       "invalid email",
			payload:    map[string]interface{}{"email": "invalid-email", "password": "password123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password too short",
			payload:    map[string]interface{}{"email": "test2@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password of exactly six characters",
			payload:    map[string]interface{}{"email": "test3@example.com", "password": "123456"},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name:       "missing email",
			payload:    map[string]interface{}{"password": "password123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			payload:    map[string]interface{}{"email": "test4@example.com"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAuthTestHandler(mocks.NewMockUserStore(), &mocks.MockPasswordVerifier{ShouldSucceed: true})

			recorder, env := postJSON(t, handler.Register, "/api/auth/register", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				assert.True(t, env.Success)

				var authResp AuthResponse
				require.NoError(t, json.Unmarshal(env.Data, &authResp))
				assert.Equal(t, "test-token", authResp.Token)
				assert.NotEqual(t, uuid.Nil, authResp.User.ID)
			} else {
				assert.False(t, env.Success)
				assert.NotEmpty(t, env.Error)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	handler := newAuthTestHandler(users, &mocks.MockPasswordVerifier{ShouldSucceed: true})

	payload := map[string]interface{}{"email": "dup@example.com", "password": "password123"}

	recorder, _ := postJSON(t, handler.Register, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, env := postJSON(t, handler.Register, "/api/auth/register", payload)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "Email already exists", env.Error)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seed := func() *mocks.MockUserStore {
		users := mocks.NewMockUserStore()
		users.Users["test@example.com"] = &domain.User{
			ID:             uuid.New(),
			Email:          "test@example.com",
			HashedPassword: "stored-hash",
		}
		return users
	}

	t.Run("valid login", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: true})

		recorder, env := postJSON(t, handler.Login, "/api/auth/login",
			map[string]interface{}{"email": "test@example.com", "password": "password123"})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, env.Success)

		var authResp AuthResponse
		require.NoError(t, json.Unmarshal(env.Data, &authResp))
		assert.Equal(t, "test-token", authResp.Token)
		assert.Equal(t, "test@example.com", authResp.User.Email)
	})

	t.Run("login is case-insensitive on email", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: true})

		recorder, _ := postJSON(t, handler.Login, "/api/auth/login",
			map[string]interface{}{"email": "Test@Example.COM", "password": "password123"})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown email returns 400", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: true})

		recorder, env := postJSON(t, handler.Login, "/api/auth/login",
			map[string]interface{}{"email": "nobody@example.com", "password": "password123"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Invalid email or password", env.Error)
	})

	t.Run("wrong password returns 400 with the same message", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: false})

		recorder, env := postJSON(t, handler.Login, "/api/auth/login",
			map[string]interface{}{"email": "test@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Invalid email or password", env.Error)
	})
}

func TestForgotPassword(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	users.Users["known@example.com"] = &domain.User{
		ID:    uuid.New(),
		Email: "known@example.com",
	}
	handler := newAuthTestHandler(users, &mocks.MockPasswordVerifier{})

	t.Run("known and unknown emails get the same response", func(t *testing.T) {
		for _, email := range []string{"known@example.com", "unknown@example.com"} {
			recorder, env := postJSON(t, handler.ForgotPassword, "/api/auth/forgot-password",
				map[string]interface{}{"email": email})
			assert.Equal(t, http.StatusOK, recorder.Code, email)
			assert.True(t, env.Success, email)
			assert.NotEmpty(t, env.Message, email)
		}
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		recorder, _ := postJSON(t, handler.ForgotPassword, "/api/auth/forgot-password",
			map[string]interface{}{"email": "nope"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	seed := func() *mocks.MockUserStore {
		users := mocks.NewMockUserStore()
		users.Users["me@example.com"] = &domain.User{
			ID:             userID,
			Email:          "me@example.com",
			HashedPassword: "stored-hash",
		}
		return users
	}

	withUser := func(req *http.Request) *http.Request {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		return req.WithContext(ctx)
	}

	send := func(t *testing.T, handler *AuthHandler, payload map[string]interface{}, authed bool) (*httptest.ResponseRecorder, envelope) {
		t.Helper()
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/auth/change-password", bytes.NewBuffer(body))
		if authed {
			req = withUser(req)
		}
		recorder := httptest.NewRecorder()
		handler.ChangePassword(recorder, req)

		var env envelope
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&env))
		return recorder, env
	}

	t.Run("success", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: true})
		recorder, env := send(t, handler,
			map[string]interface{}{"currentPassword": "old-pass", "newPassword": "new-password"}, true)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, env.Success)
	})

	t.Run("wrong current password", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: false})
		recorder, env := send(t, handler,
			map[string]interface{}{"currentPassword": "wrong", "newPassword": "new-password"}, true)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, env.Success)
	})

	t.Run("missing user context", func(t *testing.T) {
		handler := newAuthTestHandler(seed(), &mocks.MockPasswordVerifier{ShouldSucceed: true})
		recorder, _ := send(t, handler,
			map[string]interface{}{"currentPassword": "old-pass", "newPassword": "new-password"}, false)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := mocks.NewMockUserStore()
	users.Users["me@example.com"] = &domain.User{
		ID:             userID,
		Email:          "me@example.com",
		HashedPassword: "stored-hash",
	}
	users.Users["taken@example.com"] = &domain.User{
		ID:             uuid.New(),
		Email:          "taken@example.com",
		HashedPassword: "stored-hash",
	}
	handler := newAuthTestHandler(users, &mocks.MockPasswordVerifier{})

	send := func(t *testing.T, email string) (*httptest.ResponseRecorder, envelope) {
		t.Helper()
		body, err := json.Marshal(map[string]interface{}{"email": email})
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/api/auth/profile", bytes.NewBuffer(body))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
		recorder := httptest.NewRecorder()
		handler.UpdateProfile(recorder, req)

		var env envelope
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&env))
		return recorder, env
	}

	t.Run("email taken by another user", func(t *testing.T) {
		recorder, env := send(t, "taken@example.com")
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "Email already exists", env.Error)
	})

	t.Run("successful update", func(t *testing.T) {
		recorder, env := send(t, "fresh@example.com")
		assert.Equal(t, http.StatusOK, recorder.Code)

		var user UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "fresh@example.com", user.Email)
		assert.Equal(t, userID, user.ID)
	})
}
