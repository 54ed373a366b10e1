// Package config defines core configuration types for cedar.
// These types are pure data structures with no external dependencies on Viper or other config loaders.
package config

// BackupsConfig controls backup behavior when cedar rewrites files in place.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for parse reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// LoggingConfig controls the level of the process-wide logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Config is the root configuration structure for cedar.
type Config struct {
	// Languages maps file extensions (with leading dot) to registered
	// language-table names, e.g. ".json" -> "json".
	Languages map[string]string `mapstructure:"languages" yaml:"languages"`

	// DefaultLanguage is used when neither the extension map nor content
	// detection identifies a file's language.
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior for in-place edits.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// Logging configures the process-wide logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers for batch parsing.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Write applies edits to files in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Languages: map[string]string{
			".json": "json",
			".js":   "javascript",
			".calc": "arithmetic",
		},
		DefaultLanguage: "json",
		Ignore:          nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Logging: LoggingConfig{Level: "info"},
		Format:  FormatText,
		Jobs:    0, // 0 means auto (runtime.NumCPU())
	}
}
