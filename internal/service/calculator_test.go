package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/service"
)

func TestComputeReturn(t *testing.T) {
	t.Run("computes the documented example", func(t *testing.T) {
		result, err := service.ComputeReturn(10000, 30, 33)
		if err != nil {
			t.Fatalf("ComputeReturn returned error: %v", err)
		}

		if math.Abs(result.Profit-1000) > 1e-9 {
			t.Errorf("Expected profit 1000, got %v", result.Profit)
		}
		if math.Abs(result.ProfitPercentage-10.0) > 1e-9 {
			t.Errorf("Expected 10%%, got %v", result.ProfitPercentage)
		}
		if math.Abs(result.EndValue-11000) > 1e-9 {
			t.Errorf("Expected end value 11000, got %v", result.EndValue)
		}
		if math.Abs(result.Units-10000.0/30.0) > 1e-9 {
			t.Errorf("Expected %v units, got %v", 10000.0/30.0, result.Units)
		}
	})

	t.Run("satisfies the return identities", func(t *testing.T) {
		cases := []struct {
			name                           string
			principal, startPrice, endPrice float64
		}{
			{"gain", 5000, 12.5, 19.75},
			{"loss", 2500, 90, 72},
			{"flat", 1000, 42, 42},
			{"tiny prices", 10000, 0.0004, 0.0005},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result, err := service.ComputeReturn(tc.principal, tc.startPrice, tc.endPrice)
				if err != nil {
					t.Fatalf("ComputeReturn returned error: %v", err)
				}

				wantEnd := tc.principal / tc.startPrice * tc.endPrice
				if math.Abs(result.EndValue-wantEnd) > 1e-9*math.Abs(wantEnd) {
					t.Errorf("EndValue = %v, want %v", result.EndValue, wantEnd)
				}
				wantPct := (wantEnd - tc.principal) / tc.principal * 100
				if math.Abs(result.ProfitPercentage-wantPct) > 1e-9 {
					t.Errorf("ProfitPercentage = %v, want %v", result.ProfitPercentage, wantPct)
				}
				if math.Abs(result.Profit-(result.EndValue-result.StartValue)) > 1e-9 {
					t.Errorf("Profit identity violated: %v vs %v", result.Profit, result.EndValue-result.StartValue)
				}
			})
		}
	})

	t.Run("rejects non-positive inputs", func(t *testing.T) {
		cases := []struct {
			name                           string
			principal, startPrice, endPrice float64
		}{
			{"zero principal", 0, 30, 33},
			{"negative principal", -10, 30, 33},
			{"zero start price", 10000, 0, 33},
			{"negative end price", 10000, 30, -33},
			{"nan start price", 10000, math.NaN(), 33},
			{"infinite end price", 10000, 30, math.Inf(1)},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.ComputeReturn(tc.principal, tc.startPrice, tc.endPrice)
				if !errors.Is(err, apperrors.ErrInvalidValue) {
					t.Errorf("Expected ErrInvalidValue, got %v", err)
				}
			})
		}
	})
}
