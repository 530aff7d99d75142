// Package series implements the time-series operations behind every price
// lookup: nearest-date resolution, latest-valid resolution, and price
// validity. The refresh cache keeps its stored series sorted and deduplicated
// at the database layer.
package series

import (
	"math"
	"sort"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
)

// Series is a chronological list of price observations for one asset,
// ascending by date with unique dates.
type Series []model.PricePoint

// ValidPrice reports whether p can participate in calculations: positive and
// finite. Upstream sentinel values (NaN placeholders, zeroes for missing days)
// fail this check and are treated as absent, never as zero.
func ValidPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nearest resolves the price closest to target.
//
// An exact date match with a valid price always wins, regardless of other
// entries. Otherwise every valid point competes on absolute day distance to
// target; ties keep the first-encountered entry in series order. Entries with
// invalid prices never win, even when chronologically closest.
func (s Series) Nearest(target time.Time) (float64, error) {
	targetDay := Day(target)

	for _, pt := range s {
		if pt.Date.Equal(targetDay) && ValidPrice(pt.Price) {
			return pt.Price, nil
		}
	}

	var (
		best     float64
		bestDiff time.Duration = -1
	)
	for _, pt := range s {
		if !ValidPrice(pt.Price) {
			continue
		}
		diff := targetDay.Sub(pt.Date)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			best = pt.Price
		}
	}
	if bestDiff < 0 {
		return 0, apperrors.ErrPriceNotFound
	}
	return best, nil
}

// Latest returns the most recent valid price, scanning backward from the end
// of the series.
func (s Series) Latest() (float64, error) {
	for i := len(s) - 1; i >= 0; i-- {
		if ValidPrice(s[i].Price) {
			return s[i].Price, nil
		}
	}
	return 0, apperrors.ErrPriceNotFound
}

// Sort orders the series ascending by date in place.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Date.Before(s[j].Date)
	})
}
