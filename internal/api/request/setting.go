package request

import "github.com/Omersenem/dovizkuru/internal/apperrors"

// UpdateSettingRequest is the settings write payload.
type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Validate checks the payload shape; key dispatch happens in the service.
func (r UpdateSettingRequest) Validate() error {
	if r.Key == "" {
		return apperrors.ErrInvalidSettingKey
	}
	return nil
}
