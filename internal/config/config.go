package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds the operator's saved preferences. CLI flags override any
// value loaded from disk.
type Config struct {
	// InputDevice and OutputDevice are device names as reported by the
	// driver. Empty means prompt (or system default with --default).
	InputDevice  string `json:"input_device"`
	OutputDevice string `json:"output_device"`

	// DelaySeconds sizes the echo-test buffer and the handoff ring.
	DelaySeconds int `json:"delay_seconds"`

	LogLevel string `json:"log_level"`
}

// Load reads the config from disk or returns defaults when no file exists.
func Load() (*Config, error) {
	return loadFrom(configPath())
}

// Save writes the config to disk.
func (c *Config) Save() error {
	return c.saveTo(configPath())
}

func defaults() *Config {
	return &Config{
		DelaySeconds: 2,
		LogLevel:     "info",
	}
}

func loadFrom(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.DelaySeconds <= 0 {
		cfg.DelaySeconds = 2
	}

	return cfg, nil
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "miccheck", "config.json")
}
