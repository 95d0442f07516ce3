package config

import "time"

// Config is the root configuration structure for Callisto. It covers the
// location of the submissions store, export defaults, and watch-mode
// behavior. Everything has a usable default; a config file is optional.
type Config struct {
	// Store contains the location and open options for the submissions
	// database.
	Store StoreConfig `yaml:"store"`

	// Export contains defaults for the export command. Command-line flags
	// take precedence over these values.
	Export ExportConfig `yaml:"export"`

	// Watch contains watch-mode settings.
	Watch WatchConfig `yaml:"watch"`
}

// StoreConfig locates the submissions SQLite database.
type StoreConfig struct {
	// Path is the database file path. The file must already exist; this
	// tool never creates it.
	// Default: "data/submissions.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait when the database is locked by the
	// upstream analyzer.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ExportConfig contains export defaults.
type ExportConfig struct {
	// Format is the default output format: full, csv, markdown,
	// automation, or stats.
	// Default: "full"
	Format string `yaml:"format"`

	// Pretty pretty-prints the full-dump JSON by default. It affects the
	// full format only.
	// Default: false
	Pretty bool `yaml:"pretty"`
}

// WatchConfig contains watch-mode settings.
type WatchConfig struct {
	// Debounce is the quiet period after the last store change before a
	// re-export triggers.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`
}
