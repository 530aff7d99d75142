package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/evds"
	"github.com/Omersenem/dovizkuru/internal/goldapi"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// Epoch is the earliest date ever requested from an upstream provider. An
// asset refreshed for the first time backfills its full history from here.
var Epoch = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// RefreshService keeps the local price cache current. Each asset is refreshed
// at most once per calendar day: a refresh within the same day is answered
// from bookkeeping without touching the upstream provider. Fetch errors leave
// the cache and the bookkeeping untouched so the next call retries.
type RefreshService struct {
	catalog   *asset.Catalog
	prices    *repository.PriceRepository
	currency  evds.Client
	commodity goldapi.Client
	limiter   *rate.Limiter
	group     singleflight.Group
	now       func() time.Time
}

// NewRefreshService creates a RefreshService. ratePerSecond throttles upstream
// requests across all assets; zero or negative disables throttling.
func NewRefreshService(catalog *asset.Catalog, prices *repository.PriceRepository, currency evds.Client, commodity goldapi.Client, ratePerSecond float64) *RefreshService {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &RefreshService{
		catalog:   catalog,
		prices:    prices,
		currency:  currency,
		commodity: commodity,
		limiter:   rate.NewLimiter(limit, 1),
		now:       time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *RefreshService) SetClock(now func() time.Time) {
	s.now = now
}

// Refresh brings one asset's cached series up to date. Concurrent calls for
// the same asset collapse into a single upstream fetch.
func (s *RefreshService) Refresh(ctx context.Context, assetID string) (model.RefreshResult, error) {
	a, err := s.catalog.Get(assetID)
	if err != nil {
		return model.RefreshResult{}, err
	}

	v, err, _ := s.group.Do(a.ID, func() (any, error) {
		return s.refreshOne(ctx, a)
	})
	if err != nil {
		return model.RefreshResult{}, err
	}
	return v.(model.RefreshResult), nil
}

func (s *RefreshService) refreshOne(ctx context.Context, a model.Asset) (model.RefreshResult, error) {
	today := series.Day(s.now())
	result := model.RefreshResult{AssetID: a.ID}

	state, found, err := s.prices.GetRefreshState(a.ID)
	if err != nil {
		return model.RefreshResult{}, err
	}
	if found && state.LastUpdate.Equal(today) {
		return result, nil
	}

	start := Epoch
	if found && !state.LastRecordDate.IsZero() {
		start = state.LastRecordDate.AddDate(0, 0, 1)
	}
	if start.After(today) {
		if err := s.prices.SetRefreshState(ctx, model.RefreshState{
			AssetID:        a.ID,
			LastUpdate:     today,
			LastRecordDate: state.LastRecordDate,
		}); err != nil {
			return model.RefreshResult{}, err
		}
		return result, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return model.RefreshResult{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}

	points, err := s.fetch(ctx, a, start, today)
	if err != nil {
		return model.RefreshResult{}, err
	}
	result.Fetched = true

	added, err := s.prices.InsertPrices(ctx, a.ID, points)
	if err != nil {
		return model.RefreshResult{}, err
	}
	result.PricesAdded = added

	lastRecord := state.LastRecordDate
	if n := len(points); n > 0 && points[n-1].Date.After(lastRecord) {
		lastRecord = points[n-1].Date
	}
	if err := s.prices.SetRefreshState(ctx, model.RefreshState{
		AssetID:        a.ID,
		LastUpdate:     today,
		LastRecordDate: lastRecord,
	}); err != nil {
		return model.RefreshResult{}, err
	}
	return result, nil
}

func (s *RefreshService) fetch(ctx context.Context, a model.Asset, start, end time.Time) ([]model.PricePoint, error) {
	switch a.Kind {
	case model.KindCurrency:
		return s.currency.FetchSeries(ctx, a.ID, start, end)
	case model.KindCommodity:
		return s.commodity.FetchHistory(ctx, a.ID, start, end)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q for %s", apperrors.ErrAssetNotFound, a.Kind, a.ID)
	}
}

// RefreshAll refreshes the full catalog sequentially in priority order. One
// failing asset does not stop the run; failures are reported alongside the
// successes.
func (s *RefreshService) RefreshAll(ctx context.Context) model.AllRefreshResponse {
	resp := model.AllRefreshResponse{
		Refreshed: []model.RefreshResult{},
		Errors:    []model.RefreshError{},
	}
	for _, a := range s.catalog.Ordered() {
		result, err := s.Refresh(ctx, a.ID)
		if err != nil {
			log.Printf("Refresh failed for %s: %v", a.ID, err)
			resp.Errors = append(resp.Errors, model.RefreshError{
				AssetID: a.ID,
				Name:    a.Name,
				Error:   err.Error(),
			})
			continue
		}
		resp.Success = true
		resp.Refreshed = append(resp.Refreshed, result)
		resp.TotalAdded += result.PricesAdded
	}
	return resp
}

// Spot returns the provider's current quote for a commodity symbol.
func (s *RefreshService) Spot(ctx context.Context, symbol string) (goldapi.SpotPrice, error) {
	a, err := s.catalog.Get(symbol)
	if err != nil {
		return goldapi.SpotPrice{}, err
	}
	if a.Kind != model.KindCommodity {
		return goldapi.SpotPrice{}, fmt.Errorf("%w: %s has no spot quote", apperrors.ErrAssetNotFound, symbol)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return goldapi.SpotPrice{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	return s.commodity.FetchSpot(ctx, a.ID)
}
