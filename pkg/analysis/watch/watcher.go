package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StoreWatcher watches the submissions database file for changes and
// triggers re-exports. It implements debouncing to prevent export storms
// while the analyzer is mid-write.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  *Config
}

// Config contains configuration for the store watcher.
type Config struct {
	// Path is the database file to watch.
	Path string

	// DebounceInterval is the time to wait after the last detected change
	// before triggering a re-export (default: 250ms).
	DebounceInterval time.Duration
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: 250 * time.Millisecond,
	}
}

// New creates a new store watcher.
func New(config *Config, logger *slog.Logger) (*StoreWatcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 250 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &StoreWatcher{
		watcher: watcher,
		logger:  logger.With("component", "analysis.watch"),
		config:  config,
	}, nil
}

// Watch blocks, invoking onChange after each debounced batch of changes to
// the store file, until the context is cancelled. An onChange error is
// logged and watching continues; the next change triggers another attempt.
func (w *StoreWatcher) Watch(ctx context.Context, onChange func() error) error {
	// Watch the containing directory: SQLite rewrites appear as events on
	// the db file and its -wal/-journal siblings, and some editors replace
	// the file entirely.
	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("store watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("store watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("store change detected", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.config.DebounceInterval)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(w.config.DebounceInterval)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := onChange(); err != nil {
				w.logger.Error("re-export failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// shouldProcess filters directory events down to writes affecting the
// store file or its WAL/journal siblings.
func (w *StoreWatcher) shouldProcess(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(w.config.Path)
	name := filepath.Base(event.Name)
	switch name {
	case base, base + "-wal", base + "-journal":
		return true
	}
	return false
}

// Close releases the underlying fsnotify watcher.
func (w *StoreWatcher) Close() error {
	return w.watcher.Close()
}
