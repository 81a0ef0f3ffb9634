package driving

import "github.com/custodia-labs/storycsv/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config
	// file, then STORYCSV_* environment variables.
	Get() (*domain.AppSettings, error)

	// Set validates and persists one dot-notation key.
	Set(key, value string) error

	// Unset removes a key so its default applies again.
	Unset(key string) error

	// Keys returns every supported key in sorted order.
	Keys() []string

	// Value returns the effective value of a key as text.
	Value(key string) (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the backing config file path.
	ConfigPath() string
}
