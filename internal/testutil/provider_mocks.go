package testutil

import (
	"context"
	"time"

	"github.com/Omersenem/dovizkuru/internal/goldapi"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// MockCurrencyClient is a mock implementation of evds.Client for testing. It
// serves a fixed series clipped to the requested window instead of calling the
// provider.
type MockCurrencyClient struct {
	// Points is the full series the mock can serve, keyed by series code.
	// A fetch returns the points falling inside the requested range.
	Points map[string][]model.PricePoint
	// MockError is returned from fetches when set.
	MockError error
	// FetchCount tracks how many fetches were issued.
	FetchCount int
	// LastStart and LastEnd record the most recent requested window.
	LastStart time.Time
	LastEnd   time.Time
}

// NewMockCurrencyClient creates an empty currency provider mock.
func NewMockCurrencyClient() *MockCurrencyClient {
	return &MockCurrencyClient{Points: make(map[string][]model.PricePoint)}
}

// WithSeries sets the servable points for one series code.
func (m *MockCurrencyClient) WithSeries(seriesCode string, points []model.PricePoint) *MockCurrencyClient {
	m.Points[seriesCode] = points
	return m
}

// WithError configures the mock to fail every fetch.
func (m *MockCurrencyClient) WithError(err error) *MockCurrencyClient {
	m.MockError = err
	return m
}

// FetchSeries implements evds.Client.
func (m *MockCurrencyClient) FetchSeries(_ context.Context, seriesCode string, start, end time.Time) ([]model.PricePoint, error) {
	m.FetchCount++
	m.LastStart = start
	m.LastEnd = end
	if m.MockError != nil {
		return nil, m.MockError
	}
	return clipRange(m.Points[seriesCode], start, end), nil
}

// MockCommodityClient is a mock implementation of goldapi.Client.
type MockCommodityClient struct {
	Points     map[string][]model.PricePoint
	Spot       map[string]goldapi.SpotPrice
	MockError  error
	FetchCount int
	LastStart  time.Time
	LastEnd    time.Time
}

// NewMockCommodityClient creates an empty commodity provider mock.
func NewMockCommodityClient() *MockCommodityClient {
	return &MockCommodityClient{
		Points: make(map[string][]model.PricePoint),
		Spot:   make(map[string]goldapi.SpotPrice),
	}
}

// WithHistory sets the servable points for one symbol.
func (m *MockCommodityClient) WithHistory(symbol string, points []model.PricePoint) *MockCommodityClient {
	m.Points[symbol] = points
	return m
}

// WithSpot sets the spot quote for one symbol.
func (m *MockCommodityClient) WithSpot(symbol string, spot goldapi.SpotPrice) *MockCommodityClient {
	m.Spot[symbol] = spot
	return m
}

// WithError configures the mock to fail every fetch.
func (m *MockCommodityClient) WithError(err error) *MockCommodityClient {
	m.MockError = err
	return m
}

// FetchHistory implements goldapi.Client.
func (m *MockCommodityClient) FetchHistory(_ context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	m.FetchCount++
	m.LastStart = start
	m.LastEnd = end
	if m.MockError != nil {
		return nil, m.MockError
	}
	return clipRange(m.Points[symbol], start, end), nil
}

// FetchSpot implements goldapi.Client.
func (m *MockCommodityClient) FetchSpot(_ context.Context, symbol string) (goldapi.SpotPrice, error) {
	if m.MockError != nil {
		return goldapi.SpotPrice{}, m.MockError
	}
	return m.Spot[symbol], nil
}

func clipRange(points []model.PricePoint, start, end time.Time) []model.PricePoint {
	startDay := series.Day(start)
	endDay := series.Day(end)
	out := make([]model.PricePoint, 0, len(points))
	for _, pt := range points {
		if pt.Date.Before(startDay) || pt.Date.After(endDay) {
			continue
		}
		out = append(out, pt)
	}
	return out
}
