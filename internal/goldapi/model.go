package goldapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// historyRecord is one daily aggregate from the history endpoint. The provider
// is inconsistent about field names: the timestamp arrives as "timestamp" or
// "time", the value as "price" or "value".
type historyRecord struct {
	Timestamp *int64   `json:"timestamp"`
	Time      *int64   `json:"time"`
	Price     *float64 `json:"price"`
	Value     *float64 `json:"value"`
}

// SpotPrice is the current quote for one symbol.
type SpotPrice struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	UpdatedAt int64   `json:"updatedAt"`
}

// ParseHistory decodes a history response body into canonical price points.
// Records missing a timestamp or carrying a non-positive or non-finite value
// are dropped as absent. Any body that is not an array of the accepted record
// shape is an upstream failure. The result is sorted ascending by date.
func ParseHistory(body []byte) ([]model.PricePoint, error) {
	var records []historyRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}

	points := make([]model.PricePoint, 0, len(records))
	for _, rec := range records {
		ts := rec.Timestamp
		if ts == nil {
			ts = rec.Time
		}
		price := rec.Price
		if price == nil {
			price = rec.Value
		}
		if ts == nil || price == nil || !series.ValidPrice(*price) {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  series.Day(time.Unix(*ts, 0).UTC()),
			Price: *price,
		})
	}

	s := series.Series(points)
	s.Sort()
	return s, nil
}
