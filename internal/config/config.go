// Package config handles process configuration: where the data file and
// exports live. User-facing settings (currency, vehicle profile) are part
// of the store, not this file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all voltlog process configuration.
type Config struct {
	DataPath  string `toml:"data_path,omitempty"`
	ExportDir string `toml:"export_dir,omitempty"`
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "voltlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "voltlog")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file next to the binary or in the config dir is loaded
// best-effort, and VOLTLOG_DATA / VOLTLOG_EXPORT_DIR override the file.
func Load() (Config, error) {
	for _, path := range []string{".env", filepath.Join(ConfigDir(), ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	var cfg Config
	data, err := os.ReadFile(ConfigPath())
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if v := os.Getenv("VOLTLOG_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("VOLTLOG_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ResolveDataPath returns the configured data path or the default
// location under the user config dir.
func (c Config) ResolveDataPath() (string, error) {
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	return filepath.Join(ConfigDir(), "voltlog.db"), nil
}

// ResolveExportDir returns the configured export directory or the user's
// home directory.
func (c Config) ResolveExportDir() (string, error) {
	if c.ExportDir != "" {
		return c.ExportDir, nil
	}
	return os.UserHomeDir()
}
