package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/series"
	"github.com/Omersenem/dovizkuru/internal/snapshot"
)

// CompareService answers investment-comparison requests: for one principal and
// start date it computes the buy-and-hold return of every catalog asset in TRY
// terms. Assets without usable data are dropped from the result rather than
// failing the request.
type CompareService struct {
	catalog   *asset.Catalog
	prices    *repository.PriceRepository
	snapshots *snapshot.Store
	refresh   *RefreshService
	now       func() time.Time
}

// NewCompareService creates a CompareService.
func NewCompareService(catalog *asset.Catalog, prices *repository.PriceRepository, snapshots *snapshot.Store, refresh *RefreshService) *CompareService {
	return &CompareService{
		catalog:   catalog,
		prices:    prices,
		snapshots: snapshots,
		refresh:   refresh,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *CompareService) SetClock(now func() time.Time) {
	s.now = now
}

// Compare runs the comparison for every catalog asset. Priority assets are
// processed first so the USD/TRY range is available by the time the
// USD-denominated commodities need it. Returns ErrNoComparableData when not a
// single asset produced a result.
func (s *CompareService) Compare(ctx context.Context, req model.CompareRequest) (model.CompareResponse, error) {
	if req.Amount <= 0 {
		return model.CompareResponse{}, apperrors.ErrInvalidAmount
	}
	if req.StartDate.IsZero() {
		return model.CompareResponse{}, apperrors.ErrInvalidStartDate
	}
	if series.Day(req.StartDate).After(series.Day(s.now())) {
		return model.CompareResponse{}, apperrors.ErrStartDateInFuture
	}

	var usdRange *model.PriceRange
	results := make(map[string]model.ReturnResult)
	ordered := s.catalog.Ordered()

	for _, a := range ordered {
		prange, err := s.rangeForAsset(ctx, a, req.StartDate, usdRange)
		if err != nil {
			log.Printf("Skipping %s in comparison: %v", a.ID, err)
			continue
		}
		if a.ID == asset.USDSeriesCode {
			r := prange
			usdRange = &r
		}

		result, err := ComputeReturn(req.Amount, prange.FirstPrice, prange.LastPrice)
		if err != nil {
			log.Printf("Skipping %s in comparison: %v", a.ID, err)
			continue
		}
		results[a.ID] = result
	}

	if len(results) == 0 {
		return model.CompareResponse{}, apperrors.ErrNoComparableData
	}

	selected := selectionSet(req.Selected)
	resp := model.CompareResponse{
		Results: results,
		Chart:   []model.ChartRow{},
	}
	for _, a := range ordered {
		result, ok := results[a.ID]
		if !ok || !selected(a.ID) {
			continue
		}
		resp.Chart = append(resp.Chart, model.ChartRow{
			Name:    a.Name,
			Value:   result.ProfitPercentage,
			Profit:  result.Profit,
			AssetID: a.ID,
		})
		if resp.Best == nil || result.ProfitPercentage > resp.Best.Result.ProfitPercentage {
			resp.Best = &model.BestPerformer{Asset: a, Result: result}
		}
	}
	return resp, nil
}

// selectionSet builds the membership test for the selected-asset filter. An
// empty selection means every asset.
func selectionSet(selected []string) func(string) bool {
	if len(selected) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]bool, len(selected))
	for _, id := range selected {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

// Prices returns the full redenomination-adjusted series for one asset, in TRY
// for currencies and in USD for commodities.
func (s *CompareService) Prices(ctx context.Context, assetID string) (series.Series, error) {
	a, err := s.catalog.Get(assetID)
	if err != nil {
		return nil, err
	}
	raw, err := s.loadSeries(ctx, a)
	if err != nil {
		return nil, err
	}
	return series.AdjustSeries(raw, a.Redenomination), nil
}

// rangeForAsset samples the asset's TRY price at the start of the window and
// at the most recent observation. Commodity prices are quoted in USD and are
// converted through the USD/TRY range sampled at the same two points; without
// a USD range the commodity has no TRY price.
func (s *CompareService) rangeForAsset(ctx context.Context, a model.Asset, startDate time.Time, usdRange *model.PriceRange) (model.PriceRange, error) {
	raw, err := s.loadSeries(ctx, a)
	if err != nil {
		return model.PriceRange{}, err
	}
	adjusted := series.AdjustSeries(raw, a.Redenomination)

	first, err := adjusted.Nearest(startDate)
	if err != nil {
		return model.PriceRange{}, err
	}
	last, err := adjusted.Latest()
	if err != nil {
		return model.PriceRange{}, err
	}

	if a.Kind == model.KindCommodity {
		if usdRange == nil {
			return model.PriceRange{}, fmt.Errorf("%w: no USD/TRY range to convert %s", apperrors.ErrPriceNotFound, a.ID)
		}
		first *= usdRange.FirstPrice
		last *= usdRange.LastPrice
	}
	return model.PriceRange{FirstPrice: first, LastPrice: last}, nil
}

// loadSeries resolves the raw series for an asset: refresh the cache for the
// day, read the cached rows, and fall back to the static snapshot file when
// the cache has nothing. A refresh failure only degrades to the existing data.
func (s *CompareService) loadSeries(ctx context.Context, a model.Asset) (series.Series, error) {
	if _, err := s.refresh.Refresh(ctx, a.ID); err != nil {
		log.Printf("Refresh failed for %s, serving cached data: %v", a.ID, err)
	}

	cached, err := s.prices.GetSeries(a.ID)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	snap, err := s.snapshots.Load(a.ID)
	if err != nil {
		log.Printf("No snapshot for %s: %v", a.ID, err)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSeriesNotFound, a.ID)
	}
	if len(snap) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSeriesNotFound, a.ID)
	}
	return snap, nil
}
