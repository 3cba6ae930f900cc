// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config represents the CLI configuration that can be loaded from a JSON, YAML or TOML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Output
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" toml:"output_dir,omitempty"` // Directory for formatted files
	Format    string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`             // Output format: docx, pdf, tex, json, txt
	Style     string `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`                // Path to a style file

	// Behavior
	Strict    bool   `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty"`          // Reject unattachable date-only lines
	Subtitles string `json:"subtitles,omitempty" yaml:"subtitles,omitempty" toml:"subtitles,omitempty"` // heuristic, always or never
	Jobs      int    `json:"jobs,omitempty" yaml:"jobs,omitempty" toml:"jobs,omitempty"`                // Concurrent files in batch mode
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" toml:"verbose,omitempty"`       // Print detailed debug information

	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`                         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" toml:"database_url,omitempty"` // postgres:// or sqlite:// run history
	JWTSecret   string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty" toml:"jwt_secret,omitempty"`       // Enables bearer auth on /v1
}

// Formats lists the output formats the CLI accepts
var Formats = []string{"docx", "pdf", "tex", "json", "txt"}

// LoadConfig loads configuration from a JSON, YAML or TOML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Format != "" && !isFormat(c.Format) {
		return fmt.Errorf("config error: 'format' must be one of %s, got %q", strings.Join(Formats, ", "), c.Format)
	}

	switch strings.ToLower(c.Subtitles) {
	case "", "heuristic", "always", "never":
	default:
		return fmt.Errorf("config error: 'subtitles' must be heuristic, always or never, got %q", c.Subtitles)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("config error: 'jobs' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.Style != "" {
		if _, err := os.Stat(c.Style); os.IsNotExist(err) {
			return fmt.Errorf("config error: style file not found: %s", c.Style)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Subtitles == "" {
		result.Subtitles = defaults.Subtitles
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}

	// Int fields: use default if zero
	if result.Jobs == 0 {
		result.Jobs = defaults.Jobs
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}
