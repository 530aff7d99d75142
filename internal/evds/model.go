package evds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// WireDateFormat is the day-month-year format the EVDS API uses for both
// request parameters and response dates.
const WireDateFormat = "02-01-2006"

// The API occasionally emits bare NaN tokens for missing days, which is not
// valid JSON. They are rewritten to null before decoding.
var nanSentinel = regexp.MustCompile(`:\s*NaN\s*([,\}\]])`)

// envelope is the wrapped response shape: {"items": [...]}.
type envelope struct {
	Items []json.RawMessage `json:"items"`
}

// ParseSeries decodes an EVDS response body into canonical price points for
// one series code, normalizing the small closed set of shapes the API is known
// to produce:
//
//   - a bare array of records, or the same array wrapped in an "items" object
//   - the date keyed as "Tarih", "TARIH" or "tarih", formatted day-month-year
//   - the value keyed by the dotted series code or its underscored form
//   - values as JSON numbers or numeric strings; null, NaN and empty strings
//     mean the day has no observation and are treated as absent, never as zero
//
// Records with missing, unparseable or non-positive values are dropped. Any
// body outside these shapes is an upstream failure. The result is sorted
// ascending by date.
func ParseSeries(body []byte, seriesCode string) ([]model.PricePoint, error) {
	cleaned := nanSentinel.ReplaceAll(body, []byte(": null$1"))

	items, err := decodeItems(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}

	valueKeys := []string{seriesCode, strings.ReplaceAll(seriesCode, ".", "_")}

	points := make([]model.PricePoint, 0, len(items))
	for _, raw := range items {
		var record map[string]json.RawMessage
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("%w: malformed record: %v", apperrors.ErrUpstreamFailure, err)
		}

		date, ok := recordDate(record)
		if !ok {
			continue
		}
		price, ok := recordValue(record, valueKeys)
		if !ok || !series.ValidPrice(price) {
			continue
		}

		points = append(points, model.PricePoint{Date: date, Price: price})
	}

	s := series.Series(points)
	s.Sort()
	return s, nil
}

func decodeItems(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Items == nil {
		return nil, fmt.Errorf("response is neither an array nor an items envelope")
	}
	return env.Items, nil
}

// recordDate resolves the record's date across the known key casings.
func recordDate(record map[string]json.RawMessage) (time.Time, bool) {
	for _, key := range []string{"Tarih", "TARIH", "tarih"} {
		raw, ok := record[key]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			continue
		}
		date, err := time.ParseInLocation(WireDateFormat, str, time.UTC)
		if err != nil {
			continue
		}
		return date, true
	}
	return time.Time{}, false
}

// recordValue resolves the record's numeric value across the candidate keys,
// accepting JSON numbers and numeric strings.
func recordValue(record map[string]json.RawMessage, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}

		var num float64
		if err := json.Unmarshal(raw, &num); err == nil {
			return num, true
		}

		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			num, err = strconv.ParseFloat(strings.TrimSpace(str), 64)
			if err == nil {
				return num, true
			}
		}
	}
	return 0, false
}
