package series

import (
	"time"

	"github.com/Omersenem/dovizkuru/internal/model"
)

// TRYRedenomination is the 2005 Turkish lira revaluation: six zeroes dropped
// on 2005-01-01, so values dated before the cutover are divided by 1,000,000
// to be comparable with post-cutover values.
var TRYRedenomination = model.Redenomination{
	Cutover: time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC),
	Factor:  1_000_000,
}

// Adjust scales price for the given redenomination when date falls strictly
// before the cutover. On or after the cutover the price is returned unchanged.
// A zero date skips the adjustment: unknown-era data is left alone rather than
// risking a double adjustment.
func Adjust(price float64, date time.Time, r model.Redenomination) float64 {
	if date.IsZero() || r.Factor == 0 {
		return price
	}
	if Day(date).Before(r.Cutover) {
		return price / r.Factor
	}
	return price
}

// AdjustSeries returns a copy of s with Adjust applied to every point. Raw
// stored values remain the historical record; the correction happens only at
// read time so it stays reproducible.
func AdjustSeries(s Series, r *model.Redenomination) Series {
	if r == nil {
		return s
	}
	out := make(Series, len(s))
	for i, pt := range s {
		out[i] = model.PricePoint{Date: pt.Date, Price: Adjust(pt.Price, pt.Date, *r)}
	}
	return out
}
