// Package config loads and saves budgetsplit's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetsplit configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Sync       SyncConfig       `toml:"sync"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds projection preferences.
type GeneralConfig struct {
	DailyFormula   string `toml:"daily_formula"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

// SyncConfig holds cross-device handoff settings.
type SyncConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DailyFormula:   "blend",
			CurrencySymbol: "$",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetsplit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetsplit")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetsplit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetsplit")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
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

// StorePath returns the ledger database path from env var, config, or the
// default data dir, in that order.
func StorePath(cfg Config) string {
	if p := os.Getenv("BUDGETSPLIT_DB"); p != "" {
		return p
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// LogLevel returns the log level from env var or config.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv("BUDGETSPLIT_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return cfg.Log.Level
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
