package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Omersenem/dovizkuru/internal/api/request"
	"github.com/Omersenem/dovizkuru/internal/service"
)

// SettingsHandler handles HTTP requests for the persisted settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// SettingsResponse represents the readable settings state. The provider API
// key is never echoed back; only its presence is reported.
type SettingsResponse struct {
	ChartAnimation bool `json:"chartAnimation"`
	ProviderKeySet bool `json:"providerKeySet"`
}

// Settings handles GET requests for the current settings.
//
// Endpoint: GET /api/settings
// Response: 200 OK with SettingsResponse
func (h *SettingsHandler) Settings(w http.ResponseWriter, r *http.Request) {
	animation, err := h.settingsService.ChartAnimation()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	apiKey, err := h.settingsService.ProviderAPIKey()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SettingsResponse{
		ChartAnimation: animation,
		ProviderKeySet: apiKey != "",
	})
}

// Update handles PUT requests to change one setting.
//
// Endpoint: PUT /api/settings
// Request: {"key": "ui.chart_animation", "value": "false"}
// Response: 204 No Content
// Error: 400 Bad Request for unknown keys or malformed values
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload request.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}
	if err := payload.Validate(); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.settingsService.Set(r.Context(), payload.Key, payload.Value); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
