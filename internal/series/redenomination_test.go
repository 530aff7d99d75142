package series_test

import (
	"testing"
	"time"

	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

func TestAdjust(t *testing.T) {
	t.Run("divides pre-cutover values by the factor", func(t *testing.T) {
		got := series.Adjust(1_500_000, day(2004, time.June, 15), series.TRYRedenomination)
		if got != 1.5 {
			t.Errorf("Expected 1.5, got %v", got)
		}
	})

	t.Run("leaves post-cutover values unchanged", func(t *testing.T) {
		got := series.Adjust(1.8, day(2005, time.June, 15), series.TRYRedenomination)
		if got != 1.8 {
			t.Errorf("Expected 1.8, got %v", got)
		}
	})

	t.Run("cutover day itself is unchanged", func(t *testing.T) {
		got := series.Adjust(1.7, day(2005, time.January, 1), series.TRYRedenomination)
		if got != 1.7 {
			t.Errorf("Expected 1.7, got %v", got)
		}
	})

	t.Run("zero date skips the adjustment", func(t *testing.T) {
		got := series.Adjust(1_500_000, time.Time{}, series.TRYRedenomination)
		if got != 1_500_000 {
			t.Errorf("Expected unchanged value for unknown-era data, got %v", got)
		}
	})
}

func TestAdjustSeries(t *testing.T) {
	t.Run("adjusts only pre-cutover points", func(t *testing.T) {
		s := series.Series{
			pt(2004, time.June, 15, 1_500_000),
			pt(2005, time.June, 15, 1.8),
		}

		adjusted := series.AdjustSeries(s, &series.TRYRedenomination)

		if adjusted[0].Price != 1.5 {
			t.Errorf("Expected 1.5, got %v", adjusted[0].Price)
		}
		if adjusted[1].Price != 1.8 {
			t.Errorf("Expected 1.8, got %v", adjusted[1].Price)
		}
		// Raw series stays the historical record.
		if s[0].Price != 1_500_000 {
			t.Errorf("Source series modified: %v", s[0].Price)
		}
	})

	t.Run("nil config returns the series unchanged", func(t *testing.T) {
		s := series.Series{pt(2004, time.June, 15, 1_500_000)}
		adjusted := series.AdjustSeries(s, nil)
		if adjusted[0].Price != 1_500_000 {
			t.Errorf("Expected unchanged series, got %v", adjusted[0].Price)
		}
	})

	t.Run("asset-specific factor", func(t *testing.T) {
		r := model.Redenomination{
			Cutover: day(2010, time.January, 1),
			Factor:  100,
		}
		got := series.Adjust(250, day(2009, time.December, 31), r)
		if got != 2.5 {
			t.Errorf("Expected 2.5, got %v", got)
		}
	})
}
