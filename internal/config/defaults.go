package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Driver: "sqlite3",
		},
		API: APIConfig{
			Addr:           "127.0.0.1:8420",
			AllowedOrigins: []string{"http://localhost:5173"},
			TokenTTL:       30 * 24 * time.Hour,
		},
		UI: UIConfig{
			Theme:       "dark",
			ColorScheme: "calm",
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

const header = `# zendo configuration
# Every key can be overridden with a ZENDO_ environment variable,
# e.g. ZENDO_API_SECRET or ZENDO_STORAGE_DRIVER.

`

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, append([]byte(header), data...), 0600)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zendo"
	}
	return filepath.Join(home, ".local", "share", "zendo")
}
