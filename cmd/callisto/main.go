// Callisto exports broker form-analysis data from the submissions
// database for automation purposes.
//
// It reads the form_analysis table produced by the upstream page analyzer
// and renders it for downstream consumers:
//
//	# Full JSON dump of every profile
//	callisto export --format full --pretty
//
//	# Automation-ready config (known-working profiles only)
//	callisto export --format automation --output configs.json
//
//	# One broker only
//	callisto export --broker spokeo --format full
//
//	# Human-readable summary table and coverage statistics
//	callisto export --format markdown
//	callisto export --format stats
//
//	# Re-export whenever the analyzer updates the store
//	callisto export --format automation --output configs.json --watch
//
// The store is read-only input; callisto never creates, mutates, or
// deletes records.
package main

func main() {
	Execute()
}
