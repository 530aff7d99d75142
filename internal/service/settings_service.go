package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fernet/fernet-go"

	"github.com/Omersenem/dovizkuru/internal/apperrors"
	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/repository"
)

// ErrEncryptionUnavailable is returned when an encrypted setting is written or
// read without a fernet key configured.
var ErrEncryptionUnavailable = errors.New("no fernet key configured")

// SettingsService manages the persisted key/value settings. The provider API
// key is stored fernet-encrypted at rest; the chart-animation toggle is plain
// presentation state.
type SettingsService struct {
	settings *repository.SettingRepository
	key      *fernet.Key

	// onAPIKeyChange propagates a new provider credential to the live client.
	onAPIKeyChange func(string)
}

// NewSettingsService creates a SettingsService. fernetKey is the base64 key
// from configuration; empty disables encrypted settings.
func NewSettingsService(settings *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	svc := &SettingsService{settings: settings}
	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		svc.key = key
	}
	return svc, nil
}

// OnAPIKeyChange registers a callback invoked after the provider API key is
// updated, so the running upstream client picks up the new credential.
func (s *SettingsService) OnAPIKeyChange(fn func(string)) {
	s.onAPIKeyChange = fn
}

// ChartAnimation reports whether chart animations are enabled. Defaults to
// true when never set.
func (s *SettingsService) ChartAnimation() (bool, error) {
	setting, found, err := s.settings.Get(model.SettingChartAnimation)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	enabled, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false, fmt.Errorf("corrupt %s value %q: %w", model.SettingChartAnimation, setting.Value, err)
	}
	return enabled, nil
}

// SetChartAnimation persists the chart-animation toggle.
func (s *SettingsService) SetChartAnimation(ctx context.Context, enabled bool) error {
	return s.settings.Set(ctx, model.Setting{
		Key:   model.SettingChartAnimation,
		Value: strconv.FormatBool(enabled),
	})
}

// ProviderAPIKey returns the stored EVDS credential, decrypted. Returns the
// empty string when never set.
func (s *SettingsService) ProviderAPIKey() (string, error) {
	setting, found, err := s.settings.Get(model.SettingProviderAPIKey)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	if !setting.Encrypted {
		return setting.Value, nil
	}
	if s.key == nil {
		return "", ErrEncryptionUnavailable
	}
	plain := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt %s", model.SettingProviderAPIKey)
	}
	return string(plain), nil
}

// SetProviderAPIKey encrypts and persists the EVDS credential, then notifies
// the registered observer.
func (s *SettingsService) SetProviderAPIKey(ctx context.Context, value string) error {
	if s.key == nil {
		return ErrEncryptionUnavailable
	}
	token, err := fernet.EncryptAndSign([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", model.SettingProviderAPIKey, err)
	}
	if err := s.settings.Set(ctx, model.Setting{
		Key:       model.SettingProviderAPIKey,
		Value:     string(token),
		Encrypted: true,
	}); err != nil {
		return err
	}
	if s.onAPIKeyChange != nil {
		s.onAPIKeyChange(value)
	}
	return nil
}

// Set dispatches a raw key/value write to the typed setter for the key.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	switch key {
	case model.SettingChartAnimation:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a boolean", apperrors.ErrInvalidSettingKey, key)
		}
		return s.SetChartAnimation(ctx, enabled)
	case model.SettingProviderAPIKey:
		return s.SetProviderAPIKey(ctx, value)
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSettingKey, key)
	}
}
