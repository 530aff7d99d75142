package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Omersenem/dovizkuru/internal/asset"
	"github.com/Omersenem/dovizkuru/internal/evds"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
	"github.com/Omersenem/dovizkuru/internal/snapshot"
)

// ExportService writes the cached series back out as snapshot files, in the
// same shapes the snapshot store reads: the EVDS items envelope for currency
// series and the day/avg_price array for commodity symbols. An export replaces
// the asset's snapshot and invalidates the store's in-memory copy.
type ExportService struct {
	catalog   *asset.Catalog
	prices    *repository.PriceRepository
	snapshots *snapshot.Store
	dir       string
}

// NewExportService creates an ExportService writing into dir.
func NewExportService(catalog *asset.Catalog, prices *repository.PriceRepository, snapshots *snapshot.Store, dir string) *ExportService {
	return &ExportService{
		catalog:   catalog,
		prices:    prices,
		snapshots: snapshots,
		dir:       dir,
	}
}

// ExportResult summarizes one exported asset.
type ExportResult struct {
	AssetID string `json:"assetId"`
	File    string `json:"file"`
	Points  int    `json:"points"`
}

// ExportAsset writes one asset's cached series to its snapshot file. Assets
// with an empty cache are skipped rather than truncating an existing snapshot.
func (s *ExportService) ExportAsset(ctx context.Context, assetID string) (ExportResult, error) {
	a, err := s.catalog.Get(assetID)
	if err != nil {
		return ExportResult{}, err
	}

	cached, err := s.prices.GetSeries(a.ID)
	if err != nil {
		return ExportResult{}, err
	}
	result := ExportResult{AssetID: a.ID, Points: len(cached)}
	if len(cached) == 0 {
		return result, nil
	}

	body, err := marshalSnapshot(a, cached)
	if err != nil {
		return ExportResult{}, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	name := snapshot.LowerShortCode(a.ID)
	path := filepath.Join(s.dir, name)
	if err := writeFileAtomic(path, body); err != nil {
		return ExportResult{}, err
	}

	s.snapshots.Clear(a.ID)
	result.File = name
	return result, nil
}

// ExportAll exports every catalog asset with cached data.
func (s *ExportService) ExportAll(ctx context.Context) ([]ExportResult, error) {
	results := make([]ExportResult, 0, len(s.catalog.Assets()))
	for _, a := range s.catalog.Ordered() {
		result, err := s.ExportAsset(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("export of %s: %w", a.ID, err)
		}
		if result.File == "" {
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

func marshalSnapshot(a model.Asset, points []model.PricePoint) ([]byte, error) {
	var payload any
	switch a.Kind {
	case model.KindCurrency:
		valueKey := sanitizeSeriesKey(a.ID)
		items := make([]map[string]string, len(points))
		for i, pt := range points {
			items[i] = map[string]string{
				"Tarih":  pt.Date.Format(evds.WireDateFormat),
				valueKey: strconv.FormatFloat(pt.Price, 'f', -1, 64),
			}
		}
		payload = map[string]any{"items": items}
	case model.KindCommodity:
		type record struct {
			Day      string  `json:"day"`
			AvgPrice float64 `json:"avg_price"`
		}
		records := make([]record, len(points))
		for i, pt := range points {
			records[i] = record{
				Day:      pt.Date.Format("2006-01-02 15:04:05"),
				AvgPrice: pt.Price,
			}
		}
		payload = records
	default:
		return nil, fmt.Errorf("unknown kind %q for %s", a.Kind, a.ID)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot for %s: %w", a.ID, err)
	}
	return body, nil
}

// sanitizeSeriesKey mirrors the underscored value key the provider puts in its
// responses: "TP.DK.USD.A" becomes "TP_DK_USD_A".
func sanitizeSeriesKey(id string) string {
	return strings.ReplaceAll(id, ".", "_")
}

// writeFileAtomic writes through a temp file and renames it into place, so a
// concurrent snapshot read never sees a half-written file.
func writeFileAtomic(path string, body []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize snapshot %s: %w", path, err)
	}
	return nil
}
