// Package handlers exposes the clinic operations as a JSON API. Handlers
// hang off an API value holding the service dependency, so tests can build
// isolated instances instead of sharing package state.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"medtrack/internal/clinic"
	applog "medtrack/internal/log"
)

// API bundles the request handlers with their dependencies.
type API struct {
	clinic *clinic.Service
}

// NewAPI builds the handler set around a clinic service.
func NewAPI(svc *clinic.Service) *API {
	return &API{clinic: svc}
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(nil, "failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// respondError maps the clinic's failure kinds onto HTTP statuses. Anything
// unrecognised is a 500 and gets logged; the four domain errors are the
// caller's problem and are reported back verbatim.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *clinic.ValidationError
		notFoundErr   *clinic.NotFoundError
		conflictErr   *clinic.ConflictError
		stockErr      *clinic.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: conflictErr.Error()})
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: stockErr.Error()})
	default:
		applog.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
