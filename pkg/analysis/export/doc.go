// Package export provides form-profile renderers for the supported output
// formats.
//
// # Formats
//
//   - FullExporter: full-fidelity JSON array of complete profiles, with
//     optional pretty-printing
//   - AutomationExporter: automation-ready config subset keyed by broker
//     id, restricted upstream to known-working profiles
//   - CSVExporter: all columns with stored-value fidelity and a header row
//   - MarkdownExporter: fixed-column summary table for human review
//   - StatsReporter: aggregate coverage statistics written directly to the
//     output stream
//
// # Usage
//
//	exporter := export.NewFullExporter(true)
//	if err := exporter.Export(ctx, profiles, os.Stdout); err != nil {
//	    return err
//	}
//
// All renderers are stateless projections over []*analysis.FormProfile;
// none of them touches the store. Null/default handling differs by format
// and is documented on each exporter.
//
// # Error Handling
//
// Renderers return analysis.ExportError for encoding and writer failures.
// Malformed embedded JSON in a profile is never an error here; the decode
// policy is applied earlier, at scan time (see analysis.JSONField).
package export
