package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("segment.min_chars"); nested tables in the
// backing file are flattened into that form.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Unset removes a key and persists immediately.
	Unset(key string) error

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
