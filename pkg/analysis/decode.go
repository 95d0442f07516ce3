package analysis

import "encoding/json"

// JSONFieldState identifies how a stored encoded-text field decoded.
type JSONFieldState int

const (
	// JSONAbsent means the column was NULL.
	JSONAbsent JSONFieldState = iota
	// JSONRaw means the stored text did not decode as JSON (or was empty,
	// in which case no decode was attempted) and is kept verbatim.
	JSONRaw
	// JSONDecoded means the stored text decoded successfully.
	JSONDecoded
)

// JSONField is the decode result for a JSON-in-TEXT column. Decoding is
// attempted once at scan time; a malformed value never aborts the scan,
// it just stays in the Raw state. The original stored text is always
// retained so the CSV exporter can reproduce it byte for byte.
type JSONField struct {
	state   JSONFieldState
	text    string
	decoded any
}

// DecodeJSONColumn builds a JSONField from a stored column value.
// valid is false for a NULL column. Non-empty text is decoded as JSON;
// on failure the text is kept unchanged.
func DecodeJSONColumn(text string, valid bool) JSONField {
	if !valid {
		return JSONField{state: JSONAbsent}
	}
	if text == "" {
		return JSONField{state: JSONRaw}
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		// Malformed stored JSON degrades silently to the raw text.
		return JSONField{state: JSONRaw, text: text}
	}
	return JSONField{state: JSONDecoded, text: text, decoded: decoded}
}

// DecodedJSONField builds a field in the Decoded state. Intended for
// constructing profiles in tests and by embedding callers that already
// hold structured values.
func DecodedJSONField(value any) JSONField {
	data, err := json.Marshal(value)
	if err != nil {
		return JSONField{state: JSONAbsent}
	}
	return JSONField{state: JSONDecoded, text: string(data), decoded: value}
}

// State returns the decode state.
func (f JSONField) State() JSONFieldState { return f.state }

// IsAbsent reports whether the column was NULL.
func (f JSONField) IsAbsent() bool { return f.state == JSONAbsent }

// Text returns the original stored text. It is empty for an absent field.
func (f JSONField) Text() string { return f.text }

// Decoded returns the decoded structure and whether decoding succeeded.
func (f JSONField) Decoded() (any, bool) {
	return f.decoded, f.state == JSONDecoded
}

// AutomationValue returns the value the automation-config exporter emits:
// the decoded structure when decoding succeeded, nil for absent or
// malformed text (automation consumers never receive raw text), and the
// empty string when the store held one (no decode was attempted, so
// nothing failed).
func (f JSONField) AutomationValue() any {
	switch f.state {
	case JSONDecoded:
		return f.decoded
	case JSONRaw:
		if f.text == "" {
			return ""
		}
		return nil
	default:
		return nil
	}
}

// MarshalJSON emits the decoded structure, the raw text as a JSON string,
// or null for an absent field. This gives the full dump its fidelity
// guarantee: valid stored JSON round-trips structurally, malformed stored
// JSON survives as the original text.
func (f JSONField) MarshalJSON() ([]byte, error) {
	switch f.state {
	case JSONDecoded:
		return json.Marshal(f.decoded)
	case JSONRaw:
		return json.Marshal(f.text)
	default:
		return []byte("null"), nil
	}
}
