package config

import "time"

// Default values for configuration fields.
const (
	DefaultStorePath        = "data/submissions.db"
	DefaultStoreBusyTimeout = 5 * time.Second

	DefaultExportFormat = "full"
	DefaultExportPretty = false

	DefaultWatchDebounce = 250 * time.Millisecond
)

// Formats lists the supported export formats.
var Formats = []string{"full", "csv", "markdown", "automation", "stats"}

// ApplyDefaults fills in default values for any unset configuration
// fields. It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = DefaultExportFormat
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
