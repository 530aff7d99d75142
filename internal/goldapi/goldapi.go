// Package goldapi provides a client for the metal/crypto price provider.
// Symbols (XAU, XAG, BTC, ETH, XPD, HG) are quoted in USD.
package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
)

// Client fetches USD-denominated price history and spot quotes for commodity
// and crypto symbols.
type Client interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
	FetchSpot(ctx context.Context, symbol string) (SpotPrice, error)
}

// HTTPClient is the production Client.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a gold-API client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchHistory requests daily average prices for the symbol between start and
// end, normalized to canonical price points.
func (c *HTTPClient) FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("startTimestamp", strconv.FormatInt(start.Unix(), 10))
	params.Set("endTimestamp", strconv.FormatInt(end.Unix(), 10))
	params.Set("groupBy", "day")
	params.Set("aggregation", "avg")
	params.Set("orderBy", "asc")

	body, err := c.get(ctx, c.baseURL+"/history?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return ParseHistory(body)
}

// FetchSpot requests the current quote for the symbol.
func (c *HTTPClient) FetchSpot(ctx context.Context, symbol string) (SpotPrice, error) {
	body, err := c.get(ctx, c.baseURL+"/price/"+url.PathEscape(symbol))
	if err != nil {
		return SpotPrice{}, err
	}

	var spot SpotPrice
	if err := json.Unmarshal(body, &spot); err != nil {
		return SpotPrice{}, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	if spot.Price <= 0 {
		return SpotPrice{}, fmt.Errorf("%w: no spot price for %s", apperrors.ErrPriceNotFound, symbol)
	}
	return spot, nil
}

func (c *HTTPClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
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
		return nil, fmt.Errorf("%w: provider returned status %d", apperrors.ErrUpstreamFailure, resp.StatusCode)
	}
	return body, nil
}
