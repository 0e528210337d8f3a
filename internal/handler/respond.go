package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/goalflow/internal/repository"
	"github.com/templui/goalflow/internal/service"
)

const maxBodyBytes = 1 << 20

// envelope is merged into the {"ok": true} response body.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, status int, fields envelope) {
	body := envelope{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"ok": false, "error": message})
}

// fail maps a service error to a response. Unexpected errors are logged
// with attrs and reported as fallback.
func fail(w http.ResponseWriter, err error, fallback string, attrs ...any) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, repository.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrStorageDisabled):
		writeError(w, http.StatusServiceUnavailable, "Archive storage is not configured")
	default:
		slog.Error(fallback, append([]any{"error", err}, attrs...)...)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &service.ValidationError{Reason: "request body is required"}
		}
		return &service.ValidationError{Reason: "invalid JSON body"}
	}
	return nil
}
