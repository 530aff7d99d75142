package handlers

import (
	"net/http"

	"github.com/Omersenem/dovizkuru/internal/service"
)

// RefreshHandler handles HTTP requests for the catalog-wide refresh.
type RefreshHandler struct {
	refreshService *service.RefreshService
}

// NewRefreshHandler creates a new RefreshHandler with the provided service dependency.
func NewRefreshHandler(refreshService *service.RefreshService) *RefreshHandler {
	return &RefreshHandler{
		refreshService: refreshService,
	}
}

// RefreshAll handles POST requests to refresh every catalog asset.
//
// Endpoint: POST /api/refresh
// Response: 200 OK with per-asset outcomes; partial failures are listed but do
// not fail the request
func (h *RefreshHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	resp := h.refreshService.RefreshAll(r.Context())
	respondJSON(w, http.StatusOK, resp)
}
