package model

// Setting is a simple persisted key/value entry. Encrypted marks values stored
// fernet-encrypted at rest (provider credentials).
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Encrypted bool   `json:"-"`
}

// Well-known setting keys.
const (
	// SettingChartAnimation is the UI animation toggle. Presentation state
	// only: the core never reads it, it is handed to the rendering layer.
	SettingChartAnimation = "ui.chart_animation"

	// SettingProviderAPIKey is the EVDS API key, stored encrypted.
	SettingProviderAPIKey = "evds.api_key"
)
