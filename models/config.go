package models

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingURL        = errors.New("scraper.url is required")
	ErrInvalidTimeout    = errors.New("scraper.timeout_sec must be at least 1")
	ErrInvalidThreshold  = errors.New("filter.threshold must be non-negative")
	ErrMissingJSONPath   = errors.New("output.json_path is required")
	ErrMissingHistoryDir = errors.New("history.dir is required when history is enabled")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// DefaultUserAgent mimics a desktop Chrome browser; the source site
// serves an error page to obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultURL is the BAJUS gold price page the scraper was written for.
const DefaultURL = "https://www.bajus.org/gold-price"

// Config is the complete runtime configuration. Values come from an
// optional YAML file, overridden by CLI flags.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Filter  FilterConfig  `yaml:"filter"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScraperConfig controls the HTTP fetch.
type ScraperConfig struct {
	URL        string `yaml:"url"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// FilterConfig controls the price heuristic.
type FilterConfig struct {
	// Threshold is the minimum value for a number to be considered a
	// valid price.
	Threshold float64 `yaml:"threshold"`
}

// OutputConfig names the export files. An empty CSVPath disables the
// CSV export.
type OutputConfig struct {
	JSONPath string `yaml:"json_path"`
	CSVPath  string `yaml:"csv_path"`
}

// HistoryConfig controls the optional daily history files.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file and no
// flags are given.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			URL:        DefaultURL,
			UserAgent:  DefaultUserAgent,
			TimeoutSec: 15,
		},
		Filter: FilterConfig{
			Threshold: 50,
		},
		Output: OutputConfig{
			JSONPath: "prices.json",
			CSVPath:  "prices.csv",
		},
		History: HistoryConfig{
			Enabled: false,
			Dir:     "data/history",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scraper.URL == "" {
		return ErrMissingURL
	}

	if c.Scraper.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Filter.Threshold < 0 {
		return ErrInvalidThreshold
	}

	if c.Output.JSONPath == "" {
		return ErrMissingJSONPath
	}

	if c.History.Enabled && c.History.Dir == "" {
		return ErrMissingHistoryDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSec) * time.Second
}

// LogLevel maps the configured level name to its slog level. Validate
// rejects anything outside the four known names.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
