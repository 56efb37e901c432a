package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"familywallet/internal/core"
	"familywallet/internal/store"
)

// errorResponse is the uniform error body for the JSON API.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps domain and store errors onto HTTP statuses:
// unknown IDs are 404, the Admin deletion guard is 403 and validation
// failures are 422. Anything else is a 500.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAdminProtected):
		respondError(w, http.StatusForbidden, err.Error())
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrNegativeAmount,
		core.ErrEmptyDescription,
		core.ErrEmptyName,
		core.ErrZeroDate,
		core.ErrInvalidCategory,
		core.ErrInvalidType,
		core.ErrInvalidDueDay,
		core.ErrInvalidFrequency,
		core.ErrNegativeQuantity,
		core.ErrInvalidRole,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// client payloads fail loudly.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
