package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dotted paths into the underlying TOML document
// (e.g. "embedding.provider", "chunker.size").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value, "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer configuration value, 0 when absent.
	GetInt(key string) int

	// GetFloat retrieves a float configuration value, 0 when absent.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value, false when absent.
	GetBool(key string) bool

	// Set stores a configuration value under a dotted key.
	Set(key string, value any) error

	// Save persists the configuration to disk.
	Save() error
}
