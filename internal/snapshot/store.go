// Package snapshot reads the static per-asset historical price files that act
// as the fallback data source when the refresh cache has nothing for an asset.
// The files are refreshed by an out-of-band export; the store treats them as
// read-only.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/evds"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// Store loads snapshot files once per process per asset identifier and serves
// the cached copy afterwards. Construct one at process start and pass it by
// reference; Clear exists for test isolation and forced reloads.
type Store struct {
	dir        string
	candidates []CandidateFunc

	mu    sync.Mutex
	cache map[string]series.Series
}

// NewStore creates a snapshot store over the given directory using the default
// candidate-resolution strategies.
func NewStore(dir string) *Store {
	return &Store{
		dir:        dir,
		candidates: DefaultCandidates(),
		cache:      make(map[string]series.Series),
	}
}

// Load returns the snapshot series for the asset, reading the file on first
// access. Candidate file names are tried in order; if none resolves the asset
// has no configured source and every later call this session fails the same
// way.
func (s *Store) Load(assetID string) (series.Series, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[assetID]; ok {
		return cached, nil
	}

	body, err := s.readFirstCandidate(assetID)
	if err != nil {
		return nil, err
	}

	points, err := parseSnapshot(body, assetID)
	if err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", assetID, err)
	}

	s.cache[assetID] = points
	return points, nil
}

// Clear drops the cached copy for one asset, or every asset when assetID is
// empty.
func (s *Store) Clear(assetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if assetID == "" {
		s.cache = make(map[string]series.Series)
		return
	}
	delete(s.cache, assetID)
}

func (s *Store) readFirstCandidate(assetID string) ([]byte, error) {
	for _, candidate := range s.candidates {
		path := filepath.Join(s.dir, candidate(assetID))
		body, err := os.ReadFile(path)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrSeriesNotConfigured, assetID)
}

// commodityRecord is the exported gold-API snapshot shape: a bare array of
// {"day": "2024-03-01 00:00:00", "avg_price": 2000.5} records.
type commodityRecord struct {
	Day      string   `json:"day"`
	AvgPrice *float64 `json:"avg_price"`
}

// parseSnapshot accepts the two snapshot shapes: the EVDS items envelope for
// currency series, and the bare day/avg_price array for commodity symbols.
// Anything else is rejected.
func parseSnapshot(body []byte, assetID string) ([]model.PricePoint, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseCommodityRecords(trimmed)
	}
	return evds.ParseSeries(trimmed, assetID)
}

func parseCommodityRecords(body []byte) ([]model.PricePoint, error) {
	var records []commodityRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}

	points := make([]model.PricePoint, 0, len(records))
	for _, rec := range records {
		if rec.AvgPrice == nil || !series.ValidPrice(*rec.AvgPrice) {
			continue
		}
		day, ok := parseSnapshotDay(rec.Day)
		if !ok {
			continue
		}
		points = append(points, model.PricePoint{Date: day, Price: *rec.AvgPrice})
	}

	s := series.Series(points)
	s.Sort()
	return s, nil
}

// parseSnapshotDay accepts "2006-01-02" with an optional trailing time part.
func parseSnapshotDay(value string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	day, err := time.ParseInLocation("2006-01-02", datePart, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
