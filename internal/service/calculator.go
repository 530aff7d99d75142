package service

import (
	"math"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
)

// ComputeReturn calculates the buy-and-hold outcome of investing principal at
// startPrice and valuing the position at endPrice. All three inputs must be
// positive; any non-finite intermediate rejects the whole result. Failures are
// signalled with apperrors.ErrInvalidValue so callers can drop the asset from
// aggregate views instead of propagating a crash.
func ComputeReturn(principal, startPrice, endPrice float64) (model.ReturnResult, error) {
	if !isUsable(principal) || !isUsable(startPrice) || !isUsable(endPrice) {
		return model.ReturnResult{}, apperrors.ErrInvalidValue
	}

	units := principal / startPrice
	endValue := units * endPrice
	profit := endValue - principal
	profitPercentage := profit / principal * 100

	for _, v := range []float64{units, endValue, profit, profitPercentage} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.ReturnResult{}, apperrors.ErrInvalidValue
		}
	}

	return model.ReturnResult{
		StartValue:       principal,
		EndValue:         endValue,
		Profit:           profit,
		ProfitPercentage: profitPercentage,
		Units:            units,
	}, nil
}

func isUsable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
