package storage

// TableName is the records table this tool reads.
const TableName = "form_analysis"

// Schema contains the SQL statement that creates the form_analysis table.
// The table is created by the upstream analyzer's migration, not by this
// tool; the statement is published here so tests and tooling can build
// conformant fixture databases.
const Schema = `
CREATE TABLE IF NOT EXISTS form_analysis (
    broker_id TEXT PRIMARY KEY,
    page_url TEXT,
    form_selector TEXT,
    field_mappings TEXT,
    captcha_type TEXT,
    captcha_selector TEXT,
    submit_button_selector TEXT,
    confirmation_selector TEXT,
    confirmation_text_pattern TEXT,
    search_form_details TEXT,
    required_delays TEXT,
    multi_step INTEGER,
    requires_search_first INTEGER,
    has_rate_limiting INTEGER,
    uses_ajax INTEGER,
    redirect_after_submit INTEGER,
    known_working INTEGER,
    analyzed_at TEXT
);
`
