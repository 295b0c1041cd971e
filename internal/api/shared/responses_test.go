package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

func TestRespondWithData(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	recorder := httptest.NewRecorder()

	RespondWithData(recorder, req, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"hello": "world"}, body["data"])

	// Empty fields stay out of the payload entirely.
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, body, "message")
}

func TestRespondWithMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("DELETE", "/api/vehicles/abc", nil)
	recorder := httptest.NewRecorder()

	RespondWithMessage(recorder, req, http.StatusOK, "Vehicle deleted", nil)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Vehicle deleted", body["message"])
	assert.NotContains(t, body, "data")
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("basic error envelope", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/vehicles", nil)
		recorder := httptest.NewRecorder()

		RespondWithError(recorder, req, http.StatusNotFound, "Vehicle not found")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Vehicle not found", body["error"])
	})

	t.Run("trace ID from the request context is echoed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/vehicles", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		wantTraceID := GetTraceID(req.Context())
		require.Len(t, wantTraceID, TraceIDLength*2)

		recorder := httptest.NewRecorder()
		RespondWithError(recorder, req, http.StatusInternalServerError, "An unexpected error occurred")

		body := decodeBody(t, recorder)
		assert.Equal(t, wantTraceID, body["trace_id"])
	})
}

func TestRespondWithFieldErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/api/vehicles", nil)
	recorder := httptest.NewRecorder()

	RespondWithFieldErrors(recorder, req, http.StatusBadRequest, "Validation failed",
		[]string{"year is out of range", "mark is required"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, []interface{}{"year is out of range", "mark is required"}, body["errors"])
}
