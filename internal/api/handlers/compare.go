package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Omersenem/dovizkuru/internal/api/request"
	"github.com/Omersenem/dovizkuru/internal/service"
)

// CompareHandler handles HTTP requests for the investment comparison.
type CompareHandler struct {
	compareService *service.CompareService
}

// NewCompareHandler creates a new CompareHandler with the provided service dependency.
func NewCompareHandler(compareService *service.CompareService) *CompareHandler {
	return &CompareHandler{
		compareService: compareService,
	}
}

// Compare handles POST requests to run a comparison.
//
// Endpoint: POST /api/compare
// Request: {"startDate": "2020-01-15", "amount": 10000, "selected": [...]}
// Response: 200 OK with per-asset results, chart rows and the best performer
// Error: 400 Bad Request on invalid input, 404 Not Found when no asset has data
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var payload request.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	req, err := payload.Validate()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp, err := h.compareService.Compare(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
