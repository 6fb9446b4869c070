// Package config loads and validates the blogbuilder configuration file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "blog.yaml"

// Config represents the application configuration
type Config struct {
	Site       SiteConfig `yaml:"site" toml:"site"`
	ContentDir string     `yaml:"content_dir" toml:"content_dir" validate:"required"`
	OutputDir  string     `yaml:"output_dir" toml:"output_dir" validate:"required,nefield=ContentDir"`
	// Stylesheet is an optional custom stylesheet copied to style.css.
	Stylesheet string `yaml:"stylesheet,omitempty" toml:"stylesheet,omitempty"`
	// Exclude lists doublestar globs, relative to ContentDir, skipped during the walk.
	Exclude []string  `yaml:"exclude,omitempty" toml:"exclude,omitempty" validate:"dive,glob"`
	Log     LogConfig `yaml:"log" toml:"log"`
}

// SiteConfig holds the site-wide settings used by the index and the feed.
type SiteConfig struct {
	Title       string `yaml:"title" toml:"title" validate:"required"`
	BaseURL     string `yaml:"base_url" toml:"base_url" validate:"required,http_url"`
	Description string `yaml:"description" toml:"description"`
	Author      string `yaml:"author,omitempty" toml:"author,omitempty"`
}

// LogConfig configures the default slog logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty" validate:"omitempty,oneof=text json"`
}

// Overrides carries command-line values that take precedence over the file.
type Overrides struct {
	ContentDir string
	OutputDir  string
	Stylesheet string
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file. YAML is assumed unless
// the file name ends in .toml. When optional is true a missing file yields
// the defaults instead of an error.
func Load(path string, optional bool) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && optional:
		return Default(), nil
	case os.IsNotExist(err):
		return nil, errors.ConfigNotFound(path)
	case err != nil:
		return nil, errors.IOFailure("read config", path, err)
	}

	// Expand environment variables in the file content
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(expanded, &cfg)
	} else {
		err = yaml.Unmarshal(expanded, &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse config").
			WithContext("path", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply sets non-empty overrides and re-validates.
func (c *Config) Apply(o Overrides) error {
	if o.ContentDir != "" {
		c.ContentDir = o.ContentDir
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.Stylesheet != "" {
		c.Stylesheet = o.Stylesheet
	}
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "My Blog"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "http://example.com"
	}
	if c.Site.Description == "" {
		c.Site.Description = c.Site.Title + " Feed"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Log.Level == "" {
		c.Log.Level = string(LogLevelInfo)
	}
	if c.Log.Format == "" {
		c.Log.Format = string(LogFormatText)
	}
}

// loadEnvFiles loads .env and .env.local when present. Variables already
// set in the process environment are not overwritten.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Could not load env file", "file", name, "error", err)
		}
	}
}
