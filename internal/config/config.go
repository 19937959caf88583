// internal/config/config.go

// Package config loads and validates the optional YAML configuration file.
// Every setting has a default; the CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"reviewscraper/internal/model"
)

// Config is the root configuration for a scraping run.
type Config struct {
	Request RequestConfig `yaml:"request"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RequestConfig controls the shared HTTP session.
type RequestConfig struct {
	// UserAgent sent with every request.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Timeout per request, as a Go duration string.
	Timeout string `yaml:"timeout,omitempty"`

	// Delay between any two fetches, as a Go duration string.
	Delay string `yaml:"delay,omitempty"`

	// Headers merged over the default browser-like set.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// SourcesConfig tunes per-source behavior.
type SourcesConfig struct {
	// MaxPages overrides the page cap per source identifier.
	MaxPages map[string]int `yaml:"max_pages,omitempty"`

	// SampleFallback keeps the SoftwareAdvice placeholder reviews when a
	// product match fails. Defaults to true to preserve demo output.
	SampleFallback *bool `yaml:"sample_fallback,omitempty"`
}

// OutputConfig selects the sink for the run result.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// LoggingConfig controls log destination and verbosity.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Request: RequestConfig{
			Timeout: "30s",
			Delay:   "1s",
		},
		Output: OutputConfig{
			Format: "json",
			File:   "reviews.json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "scraper.log",
		},
	}
}

// Load reads a YAML configuration file, applies defaults for anything unset,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

var validFormats = map[string]bool{
	"json":   true,
	"csv":    true,
	"excel":  true,
	"sqlite": true,
}

// Validate checks durations, output format, and source identifiers.
func (c *Config) Validate() error {
	if c.Request.Timeout != "" {
		if _, err := time.ParseDuration(c.Request.Timeout); err != nil {
			return fmt.Errorf("request.timeout: %w", err)
		}
	}
	if c.Request.Delay != "" {
		if _, err := time.ParseDuration(c.Request.Delay); err != nil {
			return fmt.Errorf("request.delay: %w", err)
		}
	}

	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format: unsupported format %q", c.Output.Format)
	}
	if c.Output.File == "" {
		return fmt.Errorf("output.file is required")
	}

	for src, pages := range c.Sources.MaxPages {
		if !model.IsKnownSource(src) {
			return fmt.Errorf("sources.max_pages: unknown source %q", src)
		}
		if pages < 1 {
			return fmt.Errorf("sources.max_pages: %s must be at least 1", src)
		}
	}
	return nil
}

// TimeoutDuration returns the parsed request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Request.Timeout, 30*time.Second)
}

// DelayDuration returns the parsed inter-request delay.
func (c *Config) DelayDuration() time.Duration {
	return parseDurationOr(c.Request.Delay, time.Second)
}

// SampleFallbackEnabled reports the sample-fallback setting, defaulting on.
func (c *Config) SampleFallbackEnabled() bool {
	if c.Sources.SampleFallback == nil {
		return true
	}
	return *c.Sources.SampleFallback
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
