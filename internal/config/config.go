// Package config loads scrape settings from defaults, an optional YAML file
// and RACE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "RACE_"
	envConfig  = "RACE_CONFIG"
	defaultURL = "https://www.vendeeglobe.org/en/ranking"
)

// Config holds all run settings.
type Config struct {
	// SourceURL is the ranking page fetched when SourceFile is empty.
	SourceURL string `koanf:"source_url"`
	// SourceFile reads saved markup instead of fetching.
	SourceFile   string        `koanf:"source_file"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	UserAgent    string        `koanf:"user_agent"`

	OutputDir string `koanf:"output_dir"`
	// RosterFile overrides the embedded roster.
	RosterFile string `koanf:"roster_file"`

	SchedsHeader    string `koanf:"scheds_header"`
	GPXName         string `koanf:"gpx_name"`
	GPXWaypointTime bool   `koanf:"gpx_waypoint_time"`
	GPXSymbolPrefix string `koanf:"gpx_symbol_prefix"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// PushgatewayURL enables pushing run metrics when set.
	PushgatewayURL string `koanf:"pushgateway_url"`
	JobName        string `koanf:"job_name"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		SourceURL:       defaultURL,
		FetchTimeout:    30 * time.Second,
		UserAgent:       "race-positions-etl/1.0",
		OutputDir:       ".",
		SchedsHeader:    "EXPEDITION",
		GPXName:         "Vendee",
		GPXWaypointTime: true,
		LogLevel:        "info",
		LogFormat:       "json",
		JobName:         "race_positions_etl",
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. YAML file named by RACE_CONFIG
//  3. env (prefix RACE_), e.g. RACE_OUTPUT_DIR -> output_dir
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", envConfig, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	// RACE_CONFIG itself is not a setting.
	k.Delete("config")

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and names the offending key.
func (c *Config) Validate() error {
	if c.SourceFile == "" {
		if c.SourceURL == "" {
			return errors.New("source_url is required when source_file is not set")
		}
		u, err := url.Parse(c.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("source_url %q is not an http(s) URL", c.SourceURL)
		}
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch_timeout must be positive")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.SchedsHeader == "" {
		return errors.New("scheds_header is required")
	}
	if c.GPXName == "" {
		return errors.New("gpx_name is required")
	}
	if strings.ContainsAny(c.GPXName, `/\`) {
		return fmt.Errorf("gpx_name %q must not contain path separators", c.GPXName)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("log_format %q must be json or text", c.LogFormat)
	}
	if c.PushgatewayURL != "" && c.JobName == "" {
		return errors.New("job_name is required when pushgateway_url is set")
	}
	return nil
}
