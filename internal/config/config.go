// Package config loads hnz configuration from TOML or YAML files with
// environment overrides.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/bindz/hn"
)

// Format selects the configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Config is the complete hnz configuration.
type Config struct {
	Search SearchConfig `toml:"search" yaml:"search"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// SearchConfig controls the search pipeline and its initial state.
type SearchConfig struct {
	Endpoint   string   `toml:"endpoint" yaml:"endpoint"`
	Query      string   `toml:"query" yaml:"query"`
	Subject    string   `toml:"subject" yaml:"subject"`
	Page       int      `toml:"page" yaml:"page"`
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	Timeout    Duration `toml:"timeout" yaml:"timeout"`
	LatestOnly bool     `toml:"latest_only" yaml:"latest_only"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"` // empty selects DefaultLogPath
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Endpoint:   hn.DefaultEndpoint,
			Query:      "react",
			Subject:    string(hn.Popularity),
			Page:       0,
			Debounce:   Duration{time.Second},
			Timeout:    Duration{10 * time.Second},
			LatestOnly: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hnz/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "hnz", "config.toml")
}

// DefaultLogPath returns $XDG_STATE_HOME/hnz/hnz.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "hnz", "hnz.log")
}

// Load reads configuration from path, or from DefaultPath when path is
// empty. A missing file yields DefaultConfig. Files ending in .yaml or .yml
// are parsed as YAML, everything else as TOML. Environment overrides are
// applied and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes configuration in the given format on top of the
// defaults, then applies environment overrides and validates.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HNZ_ENDPOINT"); v != "" {
		cfg.Search.Endpoint = v
	}
	if v := os.Getenv("HNZ_QUERY"); v != "" {
		cfg.Search.Query = v
	}
	if v := os.Getenv("HNZ_SUBJECT"); v != "" {
		cfg.Search.Subject = v
	}
	if v := os.Getenv("HNZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Search.Endpoint)
	if err != nil {
		return fmt.Errorf("search.endpoint: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("search.endpoint: url scheme must be http or https, got %q", u.Scheme)
	}
	if _, err := hn.ParseSubject(c.Search.Subject); err != nil {
		return fmt.Errorf("search.subject: %w", err)
	}
	if c.Search.Page < 0 {
		return fmt.Errorf("search.page: must be >= 0, got %d", c.Search.Page)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// Subject returns the configured initial subject. Validate guarantees it parses.
func (c *Config) Subject() hn.Subject {
	s, err := hn.ParseSubject(c.Search.Subject)
	if err != nil {
		return hn.Popularity
	}
	return s
}

// LogPath returns the configured log file, or DefaultLogPath.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogPath()
}
