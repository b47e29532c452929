package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agalitsyn/secret"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ZENDO"

// DefaultPath returns the path of the user's config file
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zendo", "config.yaml")
	}
	return filepath.Join(home, ".config", "zendo", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) on top of the
// defaults and applies ZENDO_* environment overrides. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(cfg.DataDir, "zendo.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are missing from the file
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("api.addr", d.API.Addr)
	v.SetDefault("api.secret", d.API.Secret)
	v.SetDefault("api.allowed_origins", d.API.AllowedOrigins)
	v.SetDefault("api.token_ttl", d.API.TokenTTL)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.color_scheme", d.UI.ColorScheme)
	v.SetDefault("notify.enabled", d.Notify.Enabled)
}

// Validate checks values that would otherwise fail later
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite3":
	case "postgres":
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}

// Secret returns the API signing secret, masked when printed
func (c *Config) Secret() secret.String {
	return secret.NewString(c.API.Secret)
}

// String renders the config as YAML with credentials masked
func (c Config) String() string {
	if c.API.Secret != "" {
		c.API.Secret = c.Secret().String()
	}
	if c.Storage.DSN != "" {
		c.Storage.DSN = secret.NewString(c.Storage.DSN).String()
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
