package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Omersenem/dovizkuru/internal/service"
)

// ExportHandler handles HTTP requests for writing the cache out as snapshots.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler with the provided service dependency.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportAll handles POST requests to export every cached asset.
//
// Endpoint: POST /api/export
// Response: 200 OK with the list of written files
func (h *ExportHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.exportService.ExportAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// ExportAsset handles POST requests to export one asset.
//
// Endpoint: POST /api/export/{id}
// Response: 200 OK with the export result
// Error: 404 Not Found for unknown assets
func (h *ExportHandler) ExportAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	result, err := h.exportService.ExportAsset(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
