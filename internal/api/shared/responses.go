package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response body. Success responses carry data and
// an optional message; error responses carry an error string and, for
// validation failures, per-field detail strings.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope wrapping the given data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondWithMessage writes a success envelope carrying a message and
// optional data.
func RespondWithMessage(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	data interface{},
) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondWithError writes an error envelope with the given status code and
// message. It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	writeJSON(w, status, Envelope{Error: message, TraceID: traceID})
}

// RespondWithFieldErrors writes an error envelope carrying per-field
// validation details alongside the summary message.
func RespondWithFieldErrors(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	details []string,
) {
	writeJSON(w, status, Envelope{
		Error:   message,
		Errors:  details,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes an error envelope and logs the underlying
// error. The raw error never reaches the client, only the safe message does.
//
// Log level strategy:
//   - 5xx errors are logged at ERROR level
//   - 4xx errors are logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeJSON(w, status, Envelope{Error: userMessage, TraceID: traceID})
}
