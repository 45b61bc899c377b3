package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/tada"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	EnvAPIURL = "TADA_API_URL"
	EnvTheme  = "TADA_THEME"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
	// Path overrides the user config location (the --config flag)
	Path string
	// Getenv is os.Getenv unless a test swaps it
	Getenv func(string) string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, Getenv: os.Getenv}
}

// Load loads configuration with layered precedence:
// 1. Defaults
// 2. User config (~/.config/tada/config.yaml, or Path)
// 3. Environment (TADA_API_URL, TADA_THEME)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	path := l.configPath()
	if path != "" {
		if userConfig, err := LoadFromFile(path); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", path))
			config.Merge(userConfig)
		} else if l.Path != "" || !isNotExist(err) {
			l.logger.Warn("Failed to load user config", slog.String("path", path), slog.String("error", err.Error()))
			if l.Path != "" {
				return nil, err
			}
		}
	}

	if v := strings.TrimSpace(l.Getenv(EnvAPIURL)); v != "" {
		config.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(l.Getenv(EnvTheme)); v != "" {
		config.UI.Theme = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) configPath() string {
	if l.Path != "" {
		return l.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
