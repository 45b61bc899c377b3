// Package config provides configuration loading for tada.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// APIConfig points the client at the remote todo API.
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000
	BaseURL string `yaml:"base_url"`
	// Timeout bounds every request
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig tunes the terminal output.
type UIConfig struct {
	// Theme is one of classic, neon, mono
	Theme string `yaml:"theme"`
	// Group lists pending and done items separately in `tada ls`
	Group bool `yaml:"group"`
}

// LogConfig configures the log file. The TUI owns the terminal, so logs never go to stdout.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ServerConfig configures `tada serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// DataFile persists the dev server state between runs (empty = memory only)
	DataFile string `yaml:"data_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Log: LogConfig{
			File:  defaultLogFile(),
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
	}
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tada", "tada.log")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	switch c.UI.Theme {
	case "", "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme must be one of classic|neon|mono, got %q", c.UI.Theme)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other wins for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.Timeout != 0 {
		c.API.Timeout = other.API.Timeout
	}

	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.Group {
		c.UI.Group = true
	}

	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.DataFile != "" {
		c.Server.DataFile = other.Server.DataFile
	}
}
