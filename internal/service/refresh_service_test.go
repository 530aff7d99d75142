package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/goldapi"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/service"
	"github.com/Omersenem/dovizkuru/internal/testutil"
)

const usdSeries = asset.USDSeriesCode

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRefreshService_Refresh(t *testing.T) {
	today := testutil.Day(2026, 3, 10)

	t.Run("first refresh backfills from the epoch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		currency := testutil.NewMockCurrencyClient().
			WithSeries(usdSeries, testutil.DailyPoints(testutil.Day(2026, 3, 1), 10, 30, 0.1))
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if !result.Fetched {
			t.Error("Expected a fetch on first refresh")
		}
		if result.PricesAdded != 10 {
			t.Errorf("Expected 10 prices added, got %d", result.PricesAdded)
		}
		if !currency.LastStart.Equal(service.Epoch) {
			t.Errorf("Expected fetch from epoch, got %v", currency.LastStart)
		}
		if !currency.LastEnd.Equal(today) {
			t.Errorf("Expected fetch up to today, got %v", currency.LastEnd)
		}

		state, found, err := repo.GetRefreshState(usdSeries)
		if err != nil || !found {
			t.Fatalf("Expected refresh state after refresh, found=%v err=%v", found, err)
		}
		if !state.LastUpdate.Equal(today) {
			t.Errorf("Expected last update %v, got %v", today, state.LastUpdate)
		}
		if !state.LastRecordDate.Equal(testutil.Day(2026, 3, 10)) {
			t.Errorf("Expected last record 2026-03-10, got %v", state.LastRecordDate)
		}
	})

	t.Run("skips the fetch when already refreshed today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 9, 30)).
			WithRefreshState(today, testutil.Day(2026, 3, 9)).
			Build(t, db)

		currency := testutil.NewMockCurrencyClient()
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if result.Fetched {
			t.Error("Expected no fetch within the same day")
		}
		if currency.FetchCount != 0 {
			t.Errorf("Expected 0 upstream calls, got %d", currency.FetchCount)
		}
	})

	t.Run("incremental refresh starts after the last cached record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.DailyPoints(testutil.Day(2026, 3, 1), 5, 30, 0.1)...).
			WithRefreshState(testutil.Day(2026, 3, 5), testutil.Day(2026, 3, 5)).
			Build(t, db)

		currency := testutil.NewMockCurrencyClient().
			WithSeries(usdSeries, testutil.DailyPoints(testutil.Day(2026, 3, 1), 10, 30, 0.1))
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if !currency.LastStart.Equal(testutil.Day(2026, 3, 6)) {
			t.Errorf("Expected fetch from 2026-03-06, got %v", currency.LastStart)
		}
		if result.PricesAdded != 5 {
			t.Errorf("Expected 5 new prices, got %d", result.PricesAdded)
		}

		cached, err := repo.GetSeries(usdSeries)
		if err != nil {
			t.Fatalf("GetSeries failed: %v", err)
		}
		if len(cached) != 10 {
			t.Errorf("Expected 10 cached points, got %d", len(cached))
		}
	})

	t.Run("cached price wins when the provider revises an already cached day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 5, 30)).
			WithRefreshState(testutil.Day(2026, 3, 9), testutil.Day(2026, 3, 4)).
			Build(t, db)

		currency := testutil.NewMockCurrencyClient().WithSeries(usdSeries, []model.PricePoint{
			testutil.Point(2026, 3, 5, 99), // overlaps the cached day with a different value
			testutil.Point(2026, 3, 6, 31),
		})
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if result.PricesAdded != 1 {
			t.Errorf("Expected only the genuinely new row counted, got %d", result.PricesAdded)
		}

		cached, err := repo.GetSeries(usdSeries)
		if err != nil {
			t.Fatalf("GetSeries failed: %v", err)
		}
		if len(cached) != 2 {
			t.Fatalf("Expected 2 cached points, got %d", len(cached))
		}
		if cached[0].Price != 30 {
			t.Errorf("Expected the pre-existing price 30 to survive, got %v", cached[0].Price)
		}
		if cached[1].Price != 31 {
			t.Errorf("Expected the new day's price 31, got %v", cached[1].Price)
		}

		state, _, err := repo.GetRefreshState(usdSeries)
		if err != nil {
			t.Fatalf("GetRefreshState failed: %v", err)
		}
		if !state.LastRecordDate.Equal(testutil.Day(2026, 3, 6)) {
			t.Errorf("Expected last record 2026-03-06, got %v", state.LastRecordDate)
		}
	})

	t.Run("fetch failure leaves bookkeeping untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		yesterday := testutil.Day(2026, 3, 9)
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 8, 30)).
			WithRefreshState(yesterday, testutil.Day(2026, 3, 8)).
			Build(t, db)

		currency := testutil.NewMockCurrencyClient().WithError(apperrors.ErrUpstreamFailure)
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		_, err := svc.Refresh(context.Background(), usdSeries)
		if !errors.Is(err, apperrors.ErrUpstreamFailure) {
			t.Fatalf("Expected ErrUpstreamFailure, got %v", err)
		}

		state, _, err := repo.GetRefreshState(usdSeries)
		if err != nil {
			t.Fatalf("GetRefreshState failed: %v", err)
		}
		if !state.LastUpdate.Equal(yesterday) {
			t.Errorf("Expected last update untouched at %v, got %v", yesterday, state.LastUpdate)
		}
	})

	t.Run("empty upstream window still advances the daily gate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		testutil.NewSeries(usdSeries).
			WithPoints(testutil.Point(2026, 3, 8, 30)).
			WithRefreshState(testutil.Day(2026, 3, 9), testutil.Day(2026, 3, 8)).
			Build(t, db)

		currency := testutil.NewMockCurrencyClient().WithSeries(usdSeries, nil)
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), usdSeries)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if !result.Fetched || result.PricesAdded != 0 {
			t.Errorf("Expected fetched with 0 added, got %+v", result)
		}

		state, _, err := repo.GetRefreshState(usdSeries)
		if err != nil {
			t.Fatalf("GetRefreshState failed: %v", err)
		}
		if !state.LastUpdate.Equal(today) {
			t.Errorf("Expected last update %v, got %v", today, state.LastUpdate)
		}
		if !state.LastRecordDate.Equal(testutil.Day(2026, 3, 8)) {
			t.Errorf("Expected last record unchanged, got %v", state.LastRecordDate)
		}
	})

	t.Run("commodities fetch through the commodity provider", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		commodity := testutil.NewMockCommodityClient().
			WithHistory("XAU", testutil.DailyPoints(testutil.Day(2026, 3, 1), 3, 2000, 5))
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, testutil.NewMockCurrencyClient(), commodity, 0)
		svc.SetClock(fixedClock(today))

		result, err := svc.Refresh(context.Background(), "XAU")
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if result.PricesAdded != 3 {
			t.Errorf("Expected 3 prices added, got %d", result.PricesAdded)
		}
		if commodity.FetchCount != 1 {
			t.Errorf("Expected 1 commodity fetch, got %d", commodity.FetchCount)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewRefreshService(asset.DefaultCatalog(), repository.NewPriceRepository(db),
			testutil.NewMockCurrencyClient(), testutil.NewMockCommodityClient(), 0)

		_, err := svc.Refresh(context.Background(), "TP.DK.XXX.A")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

func TestRefreshService_RefreshAll(t *testing.T) {
	today := testutil.Day(2026, 3, 10)

	t.Run("collects failures without stopping the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		currency := testutil.NewMockCurrencyClient().
			WithSeries(usdSeries, testutil.DailyPoints(testutil.Day(2026, 3, 1), 5, 30, 0.1))
		commodity := testutil.NewMockCommodityClient().WithError(apperrors.ErrUpstreamFailure)
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo, currency, commodity, 0)
		svc.SetClock(fixedClock(today))

		resp := svc.RefreshAll(context.Background())
		if !resp.Success {
			t.Error("Expected success when at least one asset refreshed")
		}
		if len(resp.Errors) != 6 {
			t.Errorf("Expected 6 commodity failures, got %d", len(resp.Errors))
		}
		if len(resp.Refreshed) != 19 {
			t.Errorf("Expected 19 refreshed currencies, got %d", len(resp.Refreshed))
		}
		if resp.TotalAdded != 5 {
			t.Errorf("Expected 5 total rows added, got %d", resp.TotalAdded)
		}
	})

	t.Run("processes priority assets first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)
		svc := service.NewRefreshService(asset.DefaultCatalog(), repo,
			testutil.NewMockCurrencyClient(), testutil.NewMockCommodityClient(), 0)
		svc.SetClock(fixedClock(today))

		resp := svc.RefreshAll(context.Background())
		if len(resp.Refreshed) < 2 {
			t.Fatalf("Expected refresh results, got %d", len(resp.Refreshed))
		}
		if resp.Refreshed[0].AssetID != "TP.DK.USD.A" || resp.Refreshed[1].AssetID != "TP.DK.EUR.A" {
			t.Errorf("Expected USD and EUR first, got %s and %s",
				resp.Refreshed[0].AssetID, resp.Refreshed[1].AssetID)
		}
	})
}

func TestRefreshService_Spot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)
	commodity := testutil.NewMockCommodityClient().
		WithSpot("XAU", goldapi.SpotPrice{Name: "Gold", Symbol: "XAU", Price: 2412.5})
	svc := service.NewRefreshService(asset.DefaultCatalog(), repo,
		testutil.NewMockCurrencyClient(), commodity, 0)

	t.Run("passes the quote through", func(t *testing.T) {
		spot, err := svc.Spot(context.Background(), "XAU")
		if err != nil {
			t.Fatalf("Spot failed: %v", err)
		}
		if spot.Price != 2412.5 {
			t.Errorf("Expected price 2412.5, got %v", spot.Price)
		}
	})

	t.Run("honors pacing cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Spot(ctx, "XAU")
		if !errors.Is(err, apperrors.ErrUpstreamFailure) {
			t.Errorf("Expected ErrUpstreamFailure, got %v", err)
		}
	})

	t.Run("rejects currency assets", func(t *testing.T) {
		_, err := svc.Spot(context.Background(), usdSeries)
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("rejects unknown symbols", func(t *testing.T) {
		_, err := svc.Spot(context.Background(), "XPT")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}
