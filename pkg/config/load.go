package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. A missing file is not an error: the store location is explicit
// configuration with a conventional default, so the tool runs without a
// config file at all.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention CALLISTO_SECTION_FIELD (e.g. CALLISTO_STORE_PATH)
// and always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file (missing file uses defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format CALLISTO_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CALLISTO_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("CALLISTO_STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}
	if val := os.Getenv("CALLISTO_EXPORT_FORMAT"); val != "" {
		cfg.Export.Format = val
	}
	if val := os.Getenv("CALLISTO_EXPORT_PRETTY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Export.Pretty = b
		}
	}
	if val := os.Getenv("CALLISTO_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
}
