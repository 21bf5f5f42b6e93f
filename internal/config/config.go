package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "shieldplan"

// Config holds all shieldplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Session string `toml:"session"`
}

// StoreConfig selects where committed assessments are kept.
type StoreConfig struct {
	Driver      string `toml:"driver"`
	Path        string `toml:"path,omitempty"`
	DatabaseURL string `toml:"database_url,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr              string `toml:"addr"`
	SessionSecret     string `toml:"session_secret,omitempty"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Session: "default",
		},
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Appearance: AppearanceConfig{
			Theme: "shield",
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8787",
			SessionTTLMinutes: 120,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultDBPath is where the sqlite store lives unless configured.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "assessments.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultDBPath()
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	// Later entries win, so SHIELDPLAN_DATABASE_URL beats DATABASE_URL.
	overrides := []struct {
		key string
		dst *string
	}{
		{"SHIELDPLAN_SESSION", &cfg.General.Session},
		{"SHIELDPLAN_STORE_DRIVER", &cfg.Store.Driver},
		{"SHIELDPLAN_STORE_PATH", &cfg.Store.Path},
		{"DATABASE_URL", &cfg.Store.DatabaseURL},
		{"SHIELDPLAN_DATABASE_URL", &cfg.Store.DatabaseURL},
		{"SHIELDPLAN_THEME", &cfg.Appearance.Theme},
		{"SHIELDPLAN_ADDR", &cfg.Server.Addr},
		{"SHIELDPLAN_SESSION_SECRET", &cfg.Server.SessionSecret},
		{"SHIELDPLAN_LOG_LEVEL", &cfg.Log.Level},
		{"SHIELDPLAN_LOG_FORMAT", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}

	if v := strings.TrimSpace(os.Getenv("SHIELDPLAN_SESSION_TTL_MINUTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("SHIELDPLAN_SESSION_TTL_MINUTES: want a positive integer, got %q", v)
		}
		cfg.Server.SessionTTLMinutes = n
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
