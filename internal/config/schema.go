// Package config loads zendo's YAML configuration with environment overrides.
package config

import (
	"time"
)

// Config represents the full zendo configuration
type Config struct {
	// Where the database, lock file and TUI log live
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // sqlite3 or postgres
	Path   string `yaml:"path" mapstructure:"path"`     // sqlite file, defaults to <data_dir>/zendo.db
	DSN    string `yaml:"dsn" mapstructure:"dsn"`       // postgres connection string
}

// LogConfig configures logging
type LogConfig struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// APIConfig configures the HTTP API
type APIConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	Secret         string        `yaml:"secret" mapstructure:"secret"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	TokenTTL       time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// UIConfig holds the initial TUI look. Values chosen in the TUI are stored
// in the database and take precedence.
type UIConfig struct {
	Theme       string `yaml:"theme" mapstructure:"theme"`
	ColorScheme string `yaml:"color_scheme" mapstructure:"color_scheme"`
}

// NotifyConfig configures desktop notifications
type NotifyConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}
