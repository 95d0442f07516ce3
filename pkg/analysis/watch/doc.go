// Package watch re-runs an export whenever the submissions database
// changes on disk.
//
// The watcher observes the directory containing the store file (SQLite
// writes surface on the db file and on its -wal/-journal siblings) and
// debounces bursts of events so a multi-row analyzer write triggers one
// re-export, not one per row:
//
//	watcher, err := watch.New(&watch.Config{Path: storePath}, logger)
//	if err != nil {
//	    return err
//	}
//	defer watcher.Close()
//
//	err = watcher.Watch(ctx, func() error {
//	    return exportOnce()
//	})
//
// Watch blocks until the context is cancelled. A failing re-export is
// logged and does not stop the watcher.
package watch
