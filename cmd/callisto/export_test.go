package main

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"optward-hq/callisto/pkg/analysis/storage"
	"optward-hq/callisto/pkg/cli"
	"optward-hq/callisto/pkg/config"
)

// seedStore creates a submissions database with the two-broker scenario:
// "alpha" is known-working and multi-step with no recorded captcha,
// "beta" is not working and guarded by recaptcha.
func seedStore(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "submissions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to create fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(storage.Schema); err != nil {
		t.Fatalf("Failed to create fixture schema: %v", err)
	}

	insert := `INSERT INTO form_analysis (
		broker_id, page_url, form_selector, field_mappings,
		captcha_type, submit_button_selector, confirmation_selector,
		multi_step, requires_search_first, known_working, analyzed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := db.Exec(insert,
		"alpha", "https://alpha.example/optout", "#form",
		`{"first_name": "#fname"}`,
		nil, "#submit", ".ok",
		1, 0, 1, "2026-08-01 14:03:22",
	); err != nil {
		t.Fatalf("Failed to seed alpha: %v", err)
	}
	if _, err := db.Exec(insert,
		"beta", "https://beta.example/optout", "#form",
		nil,
		"recaptcha", "#submit", ".ok",
		nil, nil, 0, nil,
	); err != nil {
		t.Fatalf("Failed to seed beta: %v", err)
	}

	return dbPath
}

func testConfig(storePath string) *config.Config {
	cfg := config.Default()
	cfg.Store.Path = storePath
	return cfg
}

// runExportToFile runs one export cycle into a temp file and returns the
// file contents.
func runExportToFile(t *testing.T, opts exportOptions, cfg *config.Config) string {
	t.Helper()

	opts.output = filepath.Join(t.TempDir(), "out")
	if err := exportOnce(opts, cfg); err != nil {
		t.Fatalf("exportOnce() error = %v", err)
	}

	data, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	return string(data)
}

func TestExport_MarkdownEndToEnd(t *testing.T) {
	dbPath := seedStore(t)

	out := runExportToFile(t, exportOptions{format: "markdown", storePath: dbPath}, testConfig(dbPath))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, separator, and two rows:\n%s", len(lines), out)
	}

	if lines[2] != "| alpha | https://alpha.example/optout | none | ✓ | ✓ | 2026-08-01 |" {
		t.Errorf("row alpha = %q", lines[2])
	}
	if lines[3] != "| beta | https://beta.example/optout | recaptcha | ✗ | ? | N/A |" {
		t.Errorf("row beta = %q", lines[3])
	}
}

func TestExport_AutomationOnlyKnownWorking(t *testing.T) {
	dbPath := seedStore(t)

	out := runExportToFile(t, exportOptions{format: "automation", storePath: dbPath}, testConfig(dbPath))

	var configs map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &configs); err != nil {
		t.Fatalf("Failed to decode automation config: %v", err)
	}

	if len(configs) != 1 {
		t.Fatalf("config map has %d entries, want 1: %v", len(configs), configs)
	}
	if _, present := configs["alpha"]; !present {
		t.Error("config map missing key alpha")
	}
}

func TestExport_FullDumpBothRecords(t *testing.T) {
	dbPath := seedStore(t)

	out := runExportToFile(t, exportOptions{format: "full", pretty: true, storePath: dbPath}, testConfig(dbPath))

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("Failed to decode full dump: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("full dump has %d records, want 2", len(records))
	}

	// NULL flags survive as null in the full dump.
	beta := records[1]
	if beta["broker_id"] != "beta" {
		t.Fatalf("records out of order: %v", beta["broker_id"])
	}
	if v, present := beta["multi_step"]; !present || v != nil {
		t.Errorf("beta multi_step = %v (present=%v), want null", v, present)
	}
}

func TestExport_BrokerFilter(t *testing.T) {
	dbPath := seedStore(t)

	out := runExportToFile(t, exportOptions{format: "full", broker: "beta", storePath: dbPath}, testConfig(dbPath))

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("Failed to decode full dump: %v", err)
	}
	if len(records) != 1 || records[0]["broker_id"] != "beta" {
		t.Fatalf("filtered dump = %v, want only beta", records)
	}
}

func TestExport_StatsToFile(t *testing.T) {
	dbPath := seedStore(t)

	out := runExportToFile(t, exportOptions{format: "stats", storePath: dbPath}, testConfig(dbPath))

	if !strings.Contains(out, "Total brokers analyzed: 2") {
		t.Errorf("stats output missing total:\n%s", out)
	}
	if !strings.Contains(out, "Known working: 1 (50.0%)") {
		t.Errorf("stats output missing percentage:\n%s", out)
	}
}

func TestExport_MissingStore(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.db")
	output := filepath.Join(t.TempDir(), "out")

	err := exportOnce(exportOptions{format: "full", storePath: missing, output: output}, testConfig(missing))
	if err == nil {
		t.Fatal("exportOnce() error = nil, want store-not-found failure")
	}
	if got := cli.ExitCode(err); got != 2 {
		t.Errorf("ExitCode() = %d, want 2", got)
	}

	// No partial output may exist.
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output file was created despite the missing store")
	}
}

func TestExport_MissingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to create fixture database: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE unrelated (id TEXT)"); err != nil {
		t.Fatalf("Failed to create fixture table: %v", err)
	}
	db.Close()

	err = exportOnce(exportOptions{format: "full", storePath: dbPath}, testConfig(dbPath))
	if err == nil {
		t.Fatal("exportOnce() error = nil, want schema-missing failure")
	}
	if got := cli.ExitCode(err); got != 3 {
		t.Errorf("ExitCode() = %d, want 3", got)
	}
	if !strings.Contains(err.Error(), "migration") {
		t.Errorf("error = %v, want remediation hint", err)
	}
}

func TestValidFormat(t *testing.T) {
	for _, format := range config.Formats {
		if !validFormat(format) {
			t.Errorf("validFormat(%q) = false, want true", format)
		}
	}
	if validFormat("xml") {
		t.Error("validFormat(xml) = true, want false")
	}
}
