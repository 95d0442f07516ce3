// Package storage provides read-only access to the submissions SQLite
// database.
//
// # Store
//
// The Store opens the database produced by the upstream form analyzer and
// queries the form_analysis table:
//
//	store, err := storage.Open(&storage.Config{
//	    Path:        "data/submissions.db",
//	    BusyTimeout: 5 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	profiles, err := store.Query(ctx, &analysis.Query{BrokerID: "spokeo"})
//
// # Failure Modes
//
// Open distinguishes two fatal conditions before any record query runs:
//
//   - analysis.ErrStoreNotFound: the database file is missing. The file
//     existence is checked explicitly because opening a SQLite DSN would
//     otherwise create an empty database.
//   - analysis.ErrSchemaMissing: the file exists but the form_analysis
//     table has not been migrated.
//
// Per-record anomalies (malformed embedded JSON, NULL flags) never fail a
// query; they are absorbed into the profile's JSONField and *bool fields.
//
// # Concurrency
//
// The tool is single-threaded and the store uses one connection. Rows are
// returned ordered by broker_id ascending so output is deterministic.
package storage
