package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Omersenem/dovizkuru/internal/api"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/config"
	"github.com/Omersenem/dovizkuru/internal/database"
	"github.com/Omersenem/dovizkuru/internal/evds"
	"github.com/Omersenem/dovizkuru/internal/goldapi"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/scheduler"
	"github.com/Omersenem/dovizkuru/internal/service"
	"github.com/Omersenem/dovizkuru/internal/snapshot"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	priceRepo := repository.NewPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	catalog := asset.DefaultCatalog()
	snapshots := snapshot.NewStore(cfg.Snapshot.Dir)

	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}

	// The stored provider credential wins over the environment one.
	evdsKey := cfg.EVDS.APIKey
	if stored, err := settingsService.ProviderAPIKey(); err != nil {
		log.Printf("Failed to read stored provider key, using environment: %v", err)
	} else if stored != "" {
		evdsKey = stored
	}
	evdsClient := evds.NewHTTPClient(cfg.EVDS.BaseURL, evdsKey)
	settingsService.OnAPIKeyChange(evdsClient.SetAPIKey)

	goldClient := goldapi.NewHTTPClient(cfg.GoldAPI.BaseURL, cfg.GoldAPI.APIKey)

	refreshService := service.NewRefreshService(catalog, priceRepo, evdsClient, goldClient, cfg.Refresh.RatePerSecond)
	compareService := service.NewCompareService(catalog, priceRepo, snapshots, refreshService)
	exportService := service.NewExportService(catalog, priceRepo, snapshots, cfg.Snapshot.Dir)

	// Schedule the daily refresh
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	sched := scheduler.NewScheduler(schedCtx, refreshService)
	if err := sched.Register(cfg.Refresh.CronSpec); err != nil {
		log.Fatalf("Failed to register refresh schedule: %v", err)
	}
	sched.Start()
	if cfg.Refresh.RefreshOnStart {
		go sched.RunNow()
	}

	// Create router
	router := api.NewRouter(catalog, systemService, compareService, refreshService, settingsService, exportService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	sched.Stop()
	schedCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
