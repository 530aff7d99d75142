package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/service"
)

// AssetHandler handles HTTP requests for the asset endpoints: the catalog
// listing, per-asset price history, per-asset refresh and spot quotes.
type AssetHandler struct {
	catalog        *asset.Catalog
	compareService *service.CompareService
	refreshService *service.RefreshService
}

// NewAssetHandler creates a new AssetHandler with the provided dependencies.
func NewAssetHandler(catalog *asset.Catalog, compareService *service.CompareService, refreshService *service.RefreshService) *AssetHandler {
	return &AssetHandler{
		catalog:        catalog,
		compareService: compareService,
		refreshService: refreshService,
	}
}

// Assets handles GET requests to list the asset catalog in processing order.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of assets
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Ordered())
}

// Prices handles GET requests for one asset's full adjusted price history.
//
// Endpoint: GET /api/asset/{id}/prices
// Response: 200 OK with array of price points
// Error: 404 Not Found when the asset is unknown or has no data
func (h *AssetHandler) Prices(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	prices, err := h.compareService.Prices(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

// Refresh handles POST requests to refresh one asset's cached series.
//
// Endpoint: POST /api/asset/{id}/refresh
// Response: 200 OK with the refresh result
// Error: 404 Not Found for unknown assets, 502 Bad Gateway on provider failure
func (h *AssetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	result, err := h.refreshService.Refresh(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Spot handles GET requests for a commodity's current provider quote.
//
// Endpoint: GET /api/asset/{id}/spot
// Response: 200 OK with the spot quote
// Error: 404 Not Found for unknown or non-commodity assets
func (h *AssetHandler) Spot(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	spot, err := h.refreshService.Spot(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, spot)
}
