package model

import "time"

// PricePoint represents one daily price observation for an asset.
// Date carries no time component: it is always midnight UTC.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// AssetPrice is a persisted price row in the cache database.
type AssetPrice struct {
	ID      string    `json:"id"`
	AssetID string    `json:"assetId"`
	Date    time.Time `json:"date"`
	Price   float64   `json:"price"`
}

// RefreshState is the per-asset bookkeeping row for the daily refresh cache.
// LastUpdate is the calendar day the asset was last refreshed; LastRecordDate
// is the date of the newest cached price point.
type RefreshState struct {
	AssetID        string    `json:"assetId"`
	LastUpdate     time.Time `json:"lastUpdate"`
	LastRecordDate time.Time `json:"lastRecordDate"`
}

// RefreshResult describes the outcome of a single asset refresh.
type RefreshResult struct {
	AssetID     string `json:"assetId"`
	Fetched     bool   `json:"fetched"`     // false when the daily gate skipped the fetch
	PricesAdded int    `json:"pricesAdded"` // new rows merged into the series
}

// AllRefreshResponse describes the outcome of a catalog-wide refresh.
// Success is true if at least one asset refreshed without error.
type AllRefreshResponse struct {
	Success    bool            `json:"success"`
	Refreshed  []RefreshResult `json:"refreshed"`
	Errors     []RefreshError  `json:"errors"`
	TotalAdded int             `json:"totalAdded"`
}

// RefreshError identifies an asset whose refresh failed, with the reason.
type RefreshError struct {
	AssetID string `json:"assetId"`
	Name    string `json:"name"`
	Error   string `json:"error"`
}
