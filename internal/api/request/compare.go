// Package request holds the HTTP request payloads and their validation.
package request

import (
	"fmt"
	"time"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
)

// CompareRequest is the comparison request payload.
type CompareRequest struct {
	StartDate string   `json:"startDate"` // 2006-01-02
	Amount    float64  `json:"amount"`
	Selected  []string `json:"selected,omitempty"`
}

// Validate parses and validates the payload into the service request.
func (r CompareRequest) Validate() (model.CompareRequest, error) {
	if r.Amount <= 0 {
		return model.CompareRequest{}, apperrors.ErrInvalidAmount
	}
	if r.StartDate == "" {
		return model.CompareRequest{}, apperrors.ErrInvalidStartDate
	}
	start, err := time.ParseInLocation("2006-01-02", r.StartDate, time.UTC)
	if err != nil {
		return model.CompareRequest{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidStartDate, r.StartDate)
	}
	return model.CompareRequest{
		StartDate: start,
		Amount:    r.Amount,
		Selected:  r.Selected,
	}, nil
}
