// Package analysis defines the domain model for broker form-analysis
// records.
//
// # Form Profiles
//
// A FormProfile is one broker's form-automation profile as produced by the
// upstream page analyzer: element selectors, CAPTCHA information, decoded
// field mappings, and a set of tri-state behavior flags. Profiles are
// read-only from this tool's perspective; Callisto never creates, mutates,
// or deletes them.
//
// # Stored Encodings
//
// The backing store keeps structured values in scalar encodings:
//
//   - field_mappings, search_form_details, and required_delays are JSON
//     serialized into TEXT columns. They are decoded once at scan time into
//     a JSONField, a tagged result that distinguishes a successful decode,
//     malformed text kept verbatim, and an absent (NULL) value.
//   - The six behavior flags are 0/1 INTEGER columns. They decode to *bool
//     so that NULL survives as nil; nil is distinct from false and the
//     distinction is preserved through the full-dump path.
//
// # Column Schema
//
// Columns is the fixed, ordered schema of the form_analysis table. The
// store layer derives its SELECT list from it and the CSV exporter derives
// its header from it, so the column order is defined exactly once.
package analysis
