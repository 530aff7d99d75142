package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Omersenem/dovizkuru/internal/api/handlers"
	custommiddleware "github.com/Omersenem/dovizkuru/internal/api/middleware"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/config"
	"github.com/Omersenem/dovizkuru/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	catalog *asset.Catalog,
	systemService *service.SystemService,
	compareService *service.CompareService,
	refreshService *service.RefreshService,
	settingsService *service.SettingsService,
	exportService *service.ExportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(catalog, compareService, refreshService)
			r.Get("/", assetHandler.Assets)
			r.Get("/{id}/prices", assetHandler.Prices)
			r.Post("/{id}/refresh", assetHandler.Refresh)
			r.Get("/{id}/spot", assetHandler.Spot)
		})

		compareHandler := handlers.NewCompareHandler(compareService)
		r.Post("/compare", compareHandler.Compare)

		refreshHandler := handlers.NewRefreshHandler(refreshService)
		r.Post("/refresh", refreshHandler.RefreshAll)

		settingsHandler := handlers.NewSettingsHandler(settingsService)
		r.Get("/settings", settingsHandler.Settings)
		r.Put("/settings", settingsHandler.Update)

		r.Route("/export", func(r chi.Router) {
			exportHandler := handlers.NewExportHandler(exportService)
			r.Post("/", exportHandler.ExportAll)
			r.Post("/{id}", exportHandler.ExportAsset)
		})
	})

	return r
}
