package analysis

// ColumnKind classifies how a stored column decodes.
type ColumnKind int

const (
	// KindText is a plain TEXT column.
	KindText ColumnKind = iota
	// KindJSON is a TEXT column holding serialized JSON (decode-on-read).
	KindJSON
	// KindFlag is a 0/1 INTEGER column decoding to *bool.
	KindFlag
)

// Column describes one column of the form_analysis table.
type Column struct {
	Name string
	Kind ColumnKind
}

// Columns is the fixed, ordered schema of the form_analysis table. The
// store builds its SELECT list from this and scans rows in exactly this
// order; the CSV exporter uses it for the header row. Keeping the order
// in one place removes any dependence on runtime column metadata.
var Columns = []Column{
	{Name: "broker_id", Kind: KindText},
	{Name: "page_url", Kind: KindText},
	{Name: "form_selector", Kind: KindText},
	{Name: "field_mappings", Kind: KindJSON},
	{Name: "captcha_type", Kind: KindText},
	{Name: "captcha_selector", Kind: KindText},
	{Name: "submit_button_selector", Kind: KindText},
	{Name: "confirmation_selector", Kind: KindText},
	{Name: "confirmation_text_pattern", Kind: KindText},
	{Name: "search_form_details", Kind: KindJSON},
	{Name: "required_delays", Kind: KindJSON},
	{Name: "multi_step", Kind: KindFlag},
	{Name: "requires_search_first", Kind: KindFlag},
	{Name: "has_rate_limiting", Kind: KindFlag},
	{Name: "uses_ajax", Kind: KindFlag},
	{Name: "redirect_after_submit", Kind: KindFlag},
	{Name: "known_working", Kind: KindFlag},
	{Name: "analyzed_at", Kind: KindText},
}

// ColumnNames returns the column names in schema order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}
