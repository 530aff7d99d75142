package model

import "time"

// ReturnResult holds the buy-and-hold outcome for one asset. It is derived per
// request and never persisted.
//
// Invariants: EndValue = Units * endPrice, Profit = EndValue - StartValue,
// ProfitPercentage = Profit / StartValue * 100. All fields are finite; a
// non-finite calculation is rejected before a ReturnResult is built.
type ReturnResult struct {
	StartValue       float64 `json:"startValue"`
	EndValue         float64 `json:"endValue"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profitPercentage"`
	Units            float64 `json:"units"` // units of the asset the principal bought
}

// ChartRow is one chart-ready comparison entry.
type ChartRow struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"` // profit percentage
	Profit  float64 `json:"profit"`
	AssetID string  `json:"assetId"`
}

// BestPerformer is the highest-yielding asset among the selected subset.
type BestPerformer struct {
	Asset  Asset        `json:"asset"`
	Result ReturnResult `json:"result"`
}

// CompareRequest is a validated comparison request: invest Amount TRY on
// StartDate across every asset (or the Selected subset when non-empty).
type CompareRequest struct {
	StartDate time.Time
	Amount    float64
	Selected  []string
}

// CompareResponse is the full comparison output for one request.
type CompareResponse struct {
	Results map[string]ReturnResult `json:"results"`
	Chart   []ChartRow              `json:"chart"`
	Best    *BestPerformer          `json:"best,omitempty"`
}
