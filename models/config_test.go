package models

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp config file: %v", err)
	}
	return configPath
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Filter.Threshold != 50 {
		t.Errorf("default threshold = %v, want 50", cfg.Filter.Threshold)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("default timeout = %v, want 15s", cfg.Timeout())
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := createTempConfigFile(t, `
scraper:
  url: "https://example.com/prices"
  timeout_sec: 30
filter:
  threshold: 100
output:
  json_path: "out/result.json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Scraper.URL != "https://example.com/prices" {
		t.Errorf("URL = %q, want file value", cfg.Scraper.URL)
	}
	if cfg.Scraper.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want 30", cfg.Scraper.TimeoutSec)
	}
	if cfg.Filter.Threshold != 100 {
		t.Errorf("Threshold = %v, want 100", cfg.Filter.Threshold)
	}
	// Untouched fields keep defaults
	if cfg.Scraper.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default preserved", cfg.Scraper.UserAgent)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want read error")
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Logging.Level = tt.level
		if got := cfg.LogLevel(); got != tt.want {
			t.Errorf("LogLevel() with %q = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty url", func(c *Config) { c.Scraper.URL = "" }, ErrMissingURL},
		{"zero timeout", func(c *Config) { c.Scraper.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"negative threshold", func(c *Config) { c.Filter.Threshold = -1 }, ErrInvalidThreshold},
		{"empty json path", func(c *Config) { c.Output.JSONPath = "" }, ErrMissingJSONPath},
		{"history without dir", func(c *Config) { c.History.Enabled = true; c.History.Dir = "" }, ErrMissingHistoryDir},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
