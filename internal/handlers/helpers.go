package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/elizi/goldtool/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrMissingLength),
		errors.Is(err, apperrors.ErrInvalidPrice):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPriceUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &apperrors.ErrValidation{Field: "body", Message: "invalid JSON payload"}
	}
	return nil
}
