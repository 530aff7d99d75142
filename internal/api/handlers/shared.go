package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps a service error to the matching HTTP status.
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidStartDate),
		errors.Is(err, apperrors.ErrStartDateInFuture),
		errors.Is(err, apperrors.ErrInvalidSettingKey):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrSeriesNotFound),
		errors.Is(err, apperrors.ErrSeriesNotConfigured),
		errors.Is(err, apperrors.ErrPriceNotFound),
		errors.Is(err, apperrors.ErrNoComparableData):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUpstreamFailure):
		status = http.StatusBadGateway
	}

	respondJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}
