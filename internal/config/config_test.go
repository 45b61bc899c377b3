package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base url http://localhost:8000, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", cfg.API.Timeout)
	}
	if cfg.UI.Theme != "classic" {
		t.Errorf("expected classic theme, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base url",
			modify:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "relative base url",
			modify:  func(c *Config) { c.API.BaseURL = "localhost:8000/api" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "unknown theme",
			modify:  func(c *Config) { c.UI.Theme = "sparkly" },
			wantErr: true,
		},
		{
			name:    "mono theme",
			modify:  func(c *Config) { c.UI.Theme = "mono" },
			wantErr: false,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
api:
  base_url: "https://todo.example.com"
  timeout: 3s
ui:
  theme: neon
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.API.BaseURL != "https://todo.example.com" {
		t.Errorf("expected base url from file, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.API.Timeout)
	}
	if cfg.UI.Theme != "neon" {
		t.Errorf("expected neon theme, got %s", cfg.UI.Theme)
	}
	// Untouched sections keep defaults.
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected default server addr, got %s", cfg.Server.Addr)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://127.0.0.1:9999"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("expected %s, got %s", cfg.API.BaseURL, loaded.API.BaseURL)
	}
}

func TestLoaderPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: http://file:1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env := map[string]string{}
	l := NewLoader(nil)
	l.Path = path
	l.Getenv = func(k string) string { return env[k] }

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://file:1" {
		t.Errorf("expected file value, got %s", cfg.API.BaseURL)
	}

	env[EnvAPIURL] = "http://env:2/"
	cfg, err = l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://env:2" {
		t.Errorf("expected env to win with trailing slash trimmed, got %s", cfg.API.BaseURL)
	}
}

func TestLoaderExplicitPathMustExist(t *testing.T) {
	l := NewLoader(nil)
	l.Path = filepath.Join(t.TempDir(), "missing.yaml")
	l.Getenv = func(string) string { return "" }

	if _, err := l.Load(); err == nil {
		t.Fatal("expected error for missing --config file")
	}
}
