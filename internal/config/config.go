// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted by FromEnv.
const (
	EnvLogLevel  = "USERMERGE_LOG_LEVEL"
	EnvLogFormat = "USERMERGE_LOG_FORMAT"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	InputPaths []string `json:"input_file_paths,omitempty"` // CSV sources, merged in order
	OutputPath string   `json:"output_file_path,omitempty"` // JSON destination

	// Input columns
	NameColumn  string `json:"name_column,omitempty"`  // Column holding "First Last"
	EmailColumn string `json:"email_column,omitempty"` // Column holding the email

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // text or json

	// Behavior
	Pretty  bool `json:"pretty,omitempty"`  // Indent the output document
	Verbose bool `json:"verbose,omitempty"` // Print a merge summary box
}

// Defaults returns the values used when neither flags, config file nor
// environment supply one. Debug level matches the tool's historical output.
func Defaults() Config {
	return Config{
		NameColumn:  "full_name",
		EmailColumn: "email",
		LogLevel:    "debug",
		LogFormat:   "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from USERMERGE_* environment variables.
func FromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Config{
		LogLevel:  getenv(EnvLogLevel),
		LogFormat: getenv(EnvLogFormat),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required paths since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json (got %q)", c.LogFormat)
	}

	if c.NameColumn != "" && c.NameColumn == c.EmailColumn {
		return fmt.Errorf("config error: 'name_column' and 'email_column' must differ (both %q)", c.NameColumn)
	}

	for i, p := range c.InputPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config error: 'input_file_paths[%d]' is empty", i)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.InputPaths) == 0 && len(defaults.InputPaths) > 0 {
		result.InputPaths = append([]string(nil), defaults.InputPaths...)
	}
	if result.OutputPath == "" {
		result.OutputPath = defaults.OutputPath
	}
	if result.NameColumn == "" {
		result.NameColumn = defaults.NameColumn
	}
	if result.EmailColumn == "" {
		result.EmailColumn = defaults.EmailColumn
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
