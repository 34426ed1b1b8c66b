package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/healthyliving/internal/models"
	"github.com/mmynk/healthyliving/internal/service"
	"github.com/mmynk/healthyliving/internal/storage"
)

type errorResponse struct {
	Detail string              `json:"detail"`
	Errors []models.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps err onto a status code and an error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr    *models.ValidationError
		tooBig  *http.MaxBytesError
		status  int
		payload errorResponse
	)

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		payload = errorResponse{Detail: "Validation failed", Errors: verr.Fields}
	case errors.As(err, &tooBig):
		status = http.StatusRequestEntityTooLarge
		payload.Detail = "Request body too large"
	case errors.Is(err, storage.ErrMalformedID):
		status = http.StatusBadRequest
		payload.Detail = "Invalid ID format"
	case errors.Is(err, service.ErrMismatch):
		status = http.StatusBadRequest
		payload.Detail = "group_id mismatch"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		payload.Detail = "Group not found"
	case errors.Is(err, storage.ErrUnavailable):
		status = http.StatusServiceUnavailable
		payload.Detail = "Database not available"
	default:
		status = http.StatusInternalServerError
		payload.Detail = "Internal server error"
		slog.Error("Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, payload)
}
