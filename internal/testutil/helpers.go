package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/service"
	"github.com/Omersenem/dovizkuru/internal/snapshot"
)

// NewTestSystemService creates a SystemService over the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestRefreshService creates a RefreshService over the test database with
// the given provider mocks, no throttling, and a clock pinned to today.
func NewTestRefreshService(t *testing.T, db *sql.DB, currency *MockCurrencyClient, commodity *MockCommodityClient, today time.Time) *service.RefreshService {
	t.Helper()

	svc := service.NewRefreshService(asset.DefaultCatalog(), repository.NewPriceRepository(db), currency, commodity, 0)
	svc.SetClock(func() time.Time { return today })
	return svc
}

// NewTestCompareService creates a CompareService sharing the refresh service's
// clock, with snapshots served from an empty temporary directory.
func NewTestCompareService(t *testing.T, db *sql.DB, refresh *service.RefreshService, today time.Time) *service.CompareService {
	t.Helper()

	svc := service.NewCompareService(asset.DefaultCatalog(), repository.NewPriceRepository(db), snapshot.NewStore(t.TempDir()), refresh)
	svc.SetClock(func() time.Time { return today })
	return svc
}
