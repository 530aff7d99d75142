// Package evds provides a client for the TCMB EVDS exchange-rate API.
package evds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
)

// Client fetches daily exchange-rate observations for one series code over a
// date range. Implementations must treat missing-day sentinels as absent.
type Client interface {
	FetchSeries(ctx context.Context, seriesCode string, start, end time.Time) ([]model.PricePoint, error)
}

// HTTPClient is the production Client talking to the EVDS HTTP API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates an EVDS client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAPIKey replaces the API key, e.g. after the stored provider credential
// changed through the settings endpoint.
func (c *HTTPClient) SetAPIKey(key string) {
	c.apiKey = key
}

// FetchSeries requests the series between start and end (inclusive) and
// normalizes the response to canonical price points.
func (c *HTTPClient) FetchSeries(ctx context.Context, seriesCode string, start, end time.Time) ([]model.PricePoint, error) {
	params := url.Values{}
	params.Set("series", seriesCode)
	params.Set("startDate", start.Format(WireDateFormat))
	params.Set("endDate", end.Format(WireDateFormat))
	params.Set("type", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: evds returned status %d for %s", apperrors.ErrUpstreamFailure, resp.StatusCode, seriesCode)
	}

	return ParseSeries(body, seriesCode)
}
