package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"contacts-api/internal/service"
)

// Every response, success or failure, is wrapped in a uniform envelope so
// clients can branch on one shape.

type successEnvelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Timestamp  string `json:"timestamp"`
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Error      string `json:"error"`
}

// WriteSuccess writes a success envelope with the given status and payload.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{
		Success:    true,
		StatusCode: status,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteError writes an error envelope with the given status and message.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{
		Success:    false,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Error:      message,
	})
}

// writeServiceError translates domain sentinels to HTTP statuses. Anything
// unrecognized is logged with full detail and surfaced as a generic 500 so
// internals never leak to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrContactEmailTaken):
		WriteError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		WriteError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrContactNotFound):
		WriteError(w, r, http.StatusNotFound, err.Error())
	default:
		logger.Error("unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
