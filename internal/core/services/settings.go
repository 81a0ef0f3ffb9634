package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix prefixes environment overrides, e.g. STORYCSV_SEGMENT_MIN_CHARS.
const EnvPrefix = "STORYCSV_"

// setting binds a config key to a field of domain.AppSettings.
// Exactly one of str and num is set.
type setting struct {
	key string
	str func(*domain.AppSettings) *string
	num func(*domain.AppSettings) *int
}

var settingKeys = []setting{
	{key: "segment.min_chars", num: func(a *domain.AppSettings) *int { return &a.Segment.Params.MinChars }},
	{key: "segment.max_chars", num: func(a *domain.AppSettings) *int { return &a.Segment.Params.MaxChars }},
	{key: "segment.min_paragraphs", num: func(a *domain.AppSettings) *int { return &a.Segment.Params.MinParagraphs }},
	{key: "segment.continue_label", str: func(a *domain.AppSettings) *string { return &a.Segment.ContinueLabel }},
	{key: "segment.output", str: func(a *domain.AppSettings) *string { return &a.Segment.Output }},
	{key: "segment.story_title", str: func(a *domain.AppSettings) *string { return &a.Segment.Metadata.Title }},
	{key: "segment.story_description", str: func(a *domain.AppSettings) *string { return &a.Segment.Metadata.Description }},
	{key: "repair.input", str: func(a *domain.AppSettings) *string { return &a.Repair.Input }},
	{key: "repair.output", str: func(a *domain.AppSettings) *string { return &a.Repair.Output }},
	{key: "inspect.file", str: func(a *domain.AppSettings) *string { return &a.Inspect.File }},
	{key: "inspect.max_rows", num: func(a *domain.AppSettings) *int { return &a.Inspect.MaxRows }},
	{key: "inspect.max_width", num: func(a *domain.AppSettings) *int { return &a.Inspect.MaxWidth }},
	{key: "storage.data_dir", str: func(a *domain.AppSettings) *string { return &a.Storage.DataDir }},
}

func lookupSetting(key string) (setting, bool) {
	for _, s := range settingKeys {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves the effective settings and validates them.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.resolve()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings in %s: %w", s.ConfigPath(), err)
	}
	return settings, nil
}

// resolve layers stored values and environment overrides over the defaults.
// Values of the wrong type are ignored and the lower layer wins.
func (s *SettingsService) resolve() *domain.AppSettings {
	settings := domain.DefaultAppSettings()

	for _, st := range settingKeys {
		if s.configStore != nil {
			if val, ok := s.configStore.Get(st.key); ok {
				if err := st.apply(&settings, val); err != nil {
					logger.Warn("settings: ignoring %s in config: %v", st.key, err)
				}
			}
		}
		if env, ok := os.LookupEnv(EnvName(st.key)); ok {
			if err := st.apply(&settings, env); err != nil {
				logger.Warn("settings: ignoring %s: %v", EnvName(st.key), err)
			}
		}
	}
	return &settings
}

// apply stores val into the bound field. Text is parsed for integer keys.
func (st setting) apply(settings *domain.AppSettings, val any) error {
	if st.num != nil {
		n, err := toInt(val)
		if err != nil {
			return err
		}
		*st.num(settings) = n
		return nil
	}

	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("%s expects text, got %T: %w", st.key, val, domain.ErrInvalidSetting)
	}
	*st.str(settings) = str
	return nil
}

func toInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number: %w", v, domain.ErrInvalidSetting)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected a whole number, got %T: %w", val, domain.ErrInvalidSetting)
	}
}

// Set validates value against the effective settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("unknown key %q: %w", key, domain.ErrInvalidSetting)
	}

	settings := s.resolve()
	if err := st.apply(settings, value); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s=%s: %w", key, value, err)
	}

	if st.num != nil {
		return s.configStore.Set(key, *st.num(settings))
	}
	return s.configStore.Set(key, value)
}

// Unset removes a stored key.
func (s *SettingsService) Unset(key string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if _, ok := lookupSetting(key); !ok {
		return fmt.Errorf("unknown key %q: %w", key, domain.ErrInvalidSetting)
	}
	return s.configStore.Unset(key)
}

// Keys returns every supported key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, st := range settingKeys {
		keys[i] = st.key
	}
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of key as text.
func (s *SettingsService) Value(key string) (string, error) {
	st, ok := lookupSetting(key)
	if !ok {
		return "", fmt.Errorf("unknown key %q: %w", key, domain.ErrInvalidSetting)
	}
	settings := s.resolve()
	if st.num != nil {
		return strconv.Itoa(*st.num(settings)), nil
	}
	return *st.str(settings), nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the backing config file path.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
