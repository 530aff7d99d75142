package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
)

// Day builds a midnight-UTC calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Point builds one price observation.
func Point(year int, month time.Month, day int, price float64) model.PricePoint {
	return model.PricePoint{Date: Day(year, month, day), Price: price}
}

// DailyPoints generates count consecutive daily observations starting at
// start, walking the price up by step per day.
func DailyPoints(start time.Time, count int, basePrice, step float64) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Price: basePrice + float64(i)*step,
		}
	}
	return points
}

// SeriesFactory seeds cached price rows for one asset.
type SeriesFactory struct {
	assetID string
	points  []model.PricePoint
	state   *model.RefreshState
}

// NewSeries creates a factory for the given asset identifier.
func NewSeries(assetID string) *SeriesFactory {
	return &SeriesFactory{assetID: assetID}
}

// WithPoints appends observations to the factory.
func (f *SeriesFactory) WithPoints(points ...model.PricePoint) *SeriesFactory {
	f.points = append(f.points, points...)
	return f
}

// WithRefreshState also seeds the refresh bookkeeping row.
func (f *SeriesFactory) WithRefreshState(lastUpdate, lastRecord time.Time) *SeriesFactory {
	f.state = &model.RefreshState{
		AssetID:        f.assetID,
		LastUpdate:     lastUpdate,
		LastRecordDate: lastRecord,
	}
	return f
}

// Build inserts the seeded rows and returns the points.
func (f *SeriesFactory) Build(t *testing.T, db *sql.DB) []model.PricePoint {
	t.Helper()

	repo := repository.NewPriceRepository(db)
	if _, err := repo.InsertPrices(context.Background(), f.assetID, f.points); err != nil {
		t.Fatalf("Failed to seed prices for %s: %v", f.assetID, err)
	}
	if f.state != nil {
		if err := repo.SetRefreshState(context.Background(), *f.state); err != nil {
			t.Fatalf("Failed to seed refresh state for %s: %v", f.assetID, err)
		}
	}
	return f.points
}
