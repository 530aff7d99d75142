package model

import "time"

// AssetKind distinguishes how an asset's prices are sourced and denominated.
type AssetKind string

const (
	// KindCurrency is a TCMB exchange-rate series quoted directly in TRY.
	KindCurrency AssetKind = "currency"
	// KindCommodity is a metal or crypto symbol quoted in USD; its prices are
	// converted to TRY via the USD/TRY rate sampled at the same two points.
	KindCommodity AssetKind = "commodity"
)

// Redenomination describes a one-time currency-unit change: values dated
// strictly before Cutover are divided by Factor so that the whole series is
// comparable in post-change units. Stored raw values are never rewritten; the
// adjustment is applied at read time.
type Redenomination struct {
	Cutover time.Time
	Factor  float64
}

// Asset describes one tradeable instrument tracked by the comparison. The
// catalog of assets is static, defined at startup, and immutable.
type Asset struct {
	ID       string    `json:"id"`   // series code (currencies) or symbol (commodities)
	Name     string    `json:"name"` // display name
	Icon     string    `json:"icon"`
	Kind     AssetKind `json:"kind"`
	Priority bool      `json:"priority"` // refreshed and processed ahead of the rest

	// Redenomination is set on TRY-quoted series whose history spans the 2005
	// lira revaluation. Nil for assets with no unit change.
	Redenomination *Redenomination `json:"-"`
}

// PriceRange is a pair of prices for one asset sampled at the start of the
// comparison window and at the most recent observation.
type PriceRange struct {
	FirstPrice float64 `json:"firstPrice"`
	LastPrice  float64 `json:"lastPrice"`
}
