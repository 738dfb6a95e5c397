// Package config defines core configuration types for press.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Default values.
const (
	DefaultLogLevel = "info"
	DefaultCacheDB  = "cache.db"
)

// DefaultExtensions returns the manuscript file extensions searched by default.
func DefaultExtensions() []string {
	return []string{".press", ".ms"}
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	// Enabled is a pointer so that a config file can switch caching off.
	Enabled *bool `toml:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Path is the SQLite database file. Empty means the XDG cache directory.
	Path string `toml:"path,omitempty" yaml:"path,omitempty"`
}

// IsEnabled reports whether caching is on. Caching defaults to on.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Config is the root configuration structure for press.
type Config struct {
	// Extensions lists manuscript file extensions, including the dot.
	Extensions []string `toml:"extensions,omitempty" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `toml:"jobs,omitempty" yaml:"jobs,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Color is auto, always or never.
	Color ColorMode `toml:"color,omitempty" yaml:"color,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `toml:"format,omitempty" yaml:"format,omitempty"`

	// Cache configures the result cache.
	Cache CacheConfig `toml:"cache,omitempty" yaml:"cache,omitempty"`

	// CLI-level options (not persisted to config files).

	// NoContext suppresses the source line and caret under diagnostics.
	NoContext bool `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		Extensions: DefaultExtensions(),
		Ignore:     nil,
		Jobs:       0, // 0 means use GOMAXPROCS
		LogLevel:   DefaultLogLevel,
		Color:      ColorAuto,
		Format:     FormatText,
		Cache:      CacheConfig{Enabled: &enabled},
	}
}
