package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/service"
	"github.com/Omersenem/dovizkuru/internal/snapshot"
	"github.com/Omersenem/dovizkuru/internal/testutil"
)

func TestExportService(t *testing.T) {
	t.Run("exported currency snapshots round-trip through the store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 1, 30), testutil.Point(2026, 3, 9, 33)).
			Build(t, db)

		store := snapshot.NewStore(dir)
		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), store, dir)

		result, err := svc.ExportAsset(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("ExportAsset failed: %v", err)
		}
		if result.File != "usd.json" {
			t.Errorf("Expected usd.json, got %q", result.File)
		}
		if result.Points != 2 {
			t.Errorf("Expected 2 points, got %d", result.Points)
		}

		loaded, err := store.Load(usdSeries)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Expected 2 loaded points, got %d", len(loaded))
		}
		if loaded[0].Price != 30 || loaded[1].Price != 33 {
			t.Errorf("Expected prices 30 and 33, got %v and %v", loaded[0].Price, loaded[1].Price)
		}
		if !loaded[0].Date.Equal(testutil.Day(2026, 3, 1)) {
			t.Errorf("Expected 2026-03-01, got %v", loaded[0].Date)
		}
	})

	t.Run("exported commodity snapshots round-trip through the store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		testutil.NewSeries("XAU").
			WithPoints(testutil.Point(2026, 3, 1, 2000.5), testutil.Point(2026, 3, 2, 2010)).
			Build(t, db)

		store := snapshot.NewStore(dir)
		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), store, dir)

		result, err := svc.ExportAsset(context.Background(), "XAU")
		if err != nil {
			t.Fatalf("ExportAsset failed: %v", err)
		}
		if result.File != "xau.json" {
			t.Errorf("Expected xau.json, got %q", result.File)
		}

		loaded, err := store.Load("XAU")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 2 || loaded[0].Price != 2000.5 {
			t.Errorf("Expected the exported gold points back, got %+v", loaded)
		}
	})

	t.Run("export invalidates the store cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "usd.json"),
			[]byte(`{"items":[{"Tarih":"01-03-2026","TP_DK_USD_A":"29"}]}`), 0o644); err != nil {
			t.Fatalf("Failed to write snapshot: %v", err)
		}
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 1, 30)).
			Build(t, db)

		store := snapshot.NewStore(dir)
		if _, err := store.Load(usdSeries); err != nil {
			t.Fatalf("Priming load failed: %v", err)
		}

		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), store, dir)
		if _, err := svc.ExportAsset(context.Background(), usdSeries); err != nil {
			t.Fatalf("ExportAsset failed: %v", err)
		}

		loaded, err := store.Load(usdSeries)
		if err != nil {
			t.Fatalf("Load after export failed: %v", err)
		}
		if len(loaded) != 1 || loaded[0].Price != 30 {
			t.Errorf("Expected the freshly exported value 30, got %+v", loaded)
		}
	})

	t.Run("empty cache leaves the snapshot alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		original := []byte(`{"items":[{"Tarih":"01-03-2026","TP_DK_USD_A":"29"}]}`)
		path := filepath.Join(dir, "usd.json")
		if err := os.WriteFile(path, original, 0o644); err != nil {
			t.Fatalf("Failed to write snapshot: %v", err)
		}

		store := snapshot.NewStore(dir)
		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), store, dir)

		result, err := svc.ExportAsset(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("ExportAsset failed: %v", err)
		}
		if result.File != "" || result.Points != 0 {
			t.Errorf("Expected a skipped export, got %+v", result)
		}

		body, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read snapshot: %v", err)
		}
		if string(body) != string(original) {
			t.Error("Expected the existing snapshot to be untouched")
		}
	})

	t.Run("export all skips empty assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 1, 30)).
			Build(t, db)
		testutil.NewSeries("XAU").
			WithPoints(testutil.Point(2026, 3, 1, 2000)).
			Build(t, db)

		store := snapshot.NewStore(dir)
		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), store, dir)

		results, err := svc.ExportAll(context.Background())
		if err != nil {
			t.Fatalf("ExportAll failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("Expected 2 exports, got %d", len(results))
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dir := t.TempDir()
		svc := service.NewExportService(asset.DefaultCatalog(), repository.NewPriceRepository(db), snapshot.NewStore(dir), dir)

		_, err := svc.ExportAsset(context.Background(), "nope")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}
