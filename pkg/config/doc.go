// Package config provides YAML-based configuration for Callisto.
//
// Configuration is optional: every field has a default and a missing
// config file simply means "all defaults". The loading sequence is file,
// then defaults for unset fields, then CALLISTO_* environment variable
// overrides, then validation.
//
//	store:
//	  path: data/submissions.db
//	  busy_timeout: 5s
//	export:
//	  format: full
//	  pretty: false
//	watch:
//	  debounce: 250ms
//
// Environment overrides: CALLISTO_STORE_PATH, CALLISTO_STORE_BUSY_TIMEOUT,
// CALLISTO_EXPORT_FORMAT, CALLISTO_EXPORT_PRETTY, CALLISTO_WATCH_DEBOUNCE.
package config
