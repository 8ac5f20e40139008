// Package config loads the optional YAML configuration for audits.
//
// The classification rule table is a configuration surface: new categories
// of Resolve-generated files are additions to the table, not code changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/enockola/Resolve-Video-Tracker/internal/audit"
)

// Config represents the application configuration.
type Config struct {
	// Top is the number of largest files to report.
	Top int `yaml:"top"`
	// MinSize is a humanized minimum file size (e.g. "1MB").
	MinSize string `yaml:"min_size"`
	// Exclude contains glob patterns for paths to skip.
	Exclude []string `yaml:"exclude"`
	// Categories overrides the built-in rule table when non-empty.
	// Order matters: the first matching rule wins.
	Categories []CategoryRule `yaml:"categories"`
}

// CategoryRule is one entry of the ordered classification table.
type CategoryRule struct {
	// Name is the target category (proxy, optimized, render_cache,
	// stills, backups).
	Name string `yaml:"name"`
	// Patterns are directory names identifying the category.
	Patterns []string `yaml:"patterns"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Top:     30,
		MinSize: "0B",
	}
}

// Load loads configuration from path. A missing file yields the default
// configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Top < 0 {
		return fmt.Errorf("top must be >= 0, got %d", c.Top)
	}

	if c.MinSize != "" {
		if _, err := humanize.ParseBytes(c.MinSize); err != nil {
			return fmt.Errorf("invalid min_size %q: %w", c.MinSize, err)
		}
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	for _, rule := range c.Categories {
		if !validCategory(audit.Category(rule.Name)) {
			return fmt.Errorf("unknown category %q", rule.Name)
		}

		if len(rule.Patterns) == 0 {
			return fmt.Errorf("category %q has no patterns", rule.Name)
		}
	}

	return nil
}

// MinSizeBytes returns the parsed minimum file size.
func (c *Config) MinSizeBytes() int64 {
	if c.MinSize == "" {
		return 0
	}

	size, err := humanize.ParseBytes(c.MinSize)
	if err != nil {
		return 0
	}

	return int64(size)
}

// Rules converts the configured category table into classification rules.
// Nil is returned when no override is configured, selecting the built-in
// table.
func (c *Config) Rules() []audit.Rule {
	if len(c.Categories) == 0 {
		return nil
	}

	rules := make([]audit.Rule, 0, len(c.Categories))
	for _, rule := range c.Categories {
		rules = append(rules, audit.Rule{
			Category: audit.Category(rule.Name),
			Patterns: rule.Patterns,
		})
	}

	return rules
}

// validCategory reports whether category is a known rule target. The
// fallback category is excluded: "other" is never matched by a rule, only
// assigned when nothing matches.
func validCategory(category audit.Category) bool {
	for _, known := range audit.Categories() {
		if category == known && category != audit.CategoryOther {
			return true
		}
	}

	return false
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "resolve-audit", "config.yaml"), nil
}
