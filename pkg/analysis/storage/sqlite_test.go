package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"optward-hq/callisto/pkg/analysis"
)

// createTempDB creates a temporary submissions database with the
// form_analysis schema and returns its path.
func createTempDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "submissions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("Failed to create fixture schema: %v", err)
	}

	return dbPath
}

// seedProfile inserts one form_analysis row. Pass nil for NULL columns.
func seedProfile(t *testing.T, dbPath string, args ...any) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open fixture database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO form_analysis (
		broker_id, page_url, form_selector, field_mappings,
		captcha_type, captcha_selector, submit_button_selector,
		confirmation_selector, confirmation_text_pattern,
		search_form_details, required_delays,
		multi_step, requires_search_first, has_rate_limiting,
		uses_ajax, redirect_after_submit, known_working, analyzed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
}

// seedMinimal inserts a row with just identity fields plus the given
// known_working flag, everything else NULL.
func seedMinimal(t *testing.T, dbPath, brokerID string, knownWorking any) {
	t.Helper()
	seedProfile(t, dbPath,
		brokerID, "https://"+brokerID+".example/optout", "#form", nil,
		nil, nil, "#submit", ".confirm", nil,
		nil, nil,
		nil, nil, nil, nil, nil, knownWorking, nil,
	)
}

func openStore(t *testing.T, dbPath string) *Store {
	t.Helper()

	store, err := Open(&Config{Path: dbPath, BusyTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_MissingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(&Config{Path: dbPath})
	if err == nil {
		t.Fatal("Open() error = nil, want ErrStoreNotFound")
	}
	if !errors.Is(err, analysis.ErrStoreNotFound) {
		t.Errorf("Open() error = %v, want ErrStoreNotFound", err)
	}

	// Opening must never create the file.
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Error("Open() created the database file")
	}
}

func TestOpen_MissingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to create fixture database: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE unrelated (id TEXT)"); err != nil {
		t.Fatalf("Failed to create fixture table: %v", err)
	}
	db.Close()

	_, err = Open(&Config{Path: dbPath})
	if err == nil {
		t.Fatal("Open() error = nil, want ErrSchemaMissing")
	}
	if !errors.Is(err, analysis.ErrSchemaMissing) {
		t.Errorf("Open() error = %v, want ErrSchemaMissing", err)
	}
}

func TestQuery_AllOrdered(t *testing.T) {
	dbPath := createTempDB(t)
	seedMinimal(t, dbPath, "whitepages", 1)
	seedMinimal(t, dbPath, "acxiom", 0)
	seedMinimal(t, dbPath, "spokeo", nil)

	store := openStore(t, dbPath)

	profiles, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(profiles) != 3 {
		t.Fatalf("Query() returned %d profiles, want 3", len(profiles))
	}

	// broker_id ascending
	want := []string{"acxiom", "spokeo", "whitepages"}
	for i, w := range want {
		if profiles[i].BrokerID != w {
			t.Errorf("profiles[%d].BrokerID = %q, want %q", i, profiles[i].BrokerID, w)
		}
	}
}

func TestQuery_BrokerFilter(t *testing.T) {
	dbPath := createTempDB(t)
	seedMinimal(t, dbPath, "spokeo", 1)
	seedMinimal(t, dbPath, "acxiom", 1)

	store := openStore(t, dbPath)
	ctx := context.Background()

	profiles, err := store.Query(ctx, &analysis.Query{BrokerID: "spokeo"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(profiles) != 1 || profiles[0].BrokerID != "spokeo" {
		t.Fatalf("Query() = %v, want exactly spokeo", profiles)
	}

	// A filter matching nothing is a valid outcome, not an error.
	profiles, err = store.Query(ctx, &analysis.Query{BrokerID: "nonexistent"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("Query() returned %d profiles, want 0", len(profiles))
	}
}

func TestQuery_KnownWorkingOnly(t *testing.T) {
	dbPath := createTempDB(t)
	seedMinimal(t, dbPath, "working", 1)
	seedMinimal(t, dbPath, "broken", 0)
	seedMinimal(t, dbPath, "unknown", nil)

	store := openStore(t, dbPath)

	profiles, err := store.Query(context.Background(), &analysis.Query{KnownWorkingOnly: true})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(profiles) != 1 || profiles[0].BrokerID != "working" {
		t.Fatalf("Query() = %d profiles, want only the known-working one", len(profiles))
	}
}

func TestQuery_NormalizesStoredEncodings(t *testing.T) {
	dbPath := createTempDB(t)
	seedProfile(t, dbPath,
		"spokeo", "https://spokeo.example/optout", "#optout-form",
		`{"first_name": "#fname"}`, // valid JSON
		"recaptcha", ".g-recaptcha", "#submit", ".success", "removed",
		`{broken json`, // malformed JSON kept raw
		nil,            // NULL JSON column
		1, 0, nil, 1, 0, 1, "2026-08-01 14:03:22",
	)

	store := openStore(t, dbPath)

	profiles, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("Query() returned %d profiles, want 1", len(profiles))
	}
	p := profiles[0]

	if _, ok := p.FieldMappings.Decoded(); !ok {
		t.Errorf("FieldMappings not decoded, state = %v", p.FieldMappings.State())
	}
	if p.SearchFormDetails.State() != analysis.JSONRaw {
		t.Errorf("SearchFormDetails state = %v, want JSONRaw", p.SearchFormDetails.State())
	}
	if p.SearchFormDetails.Text() != `{broken json` {
		t.Errorf("SearchFormDetails.Text() = %q, want original text", p.SearchFormDetails.Text())
	}
	if !p.RequiredDelays.IsAbsent() {
		t.Errorf("RequiredDelays state = %v, want JSONAbsent", p.RequiredDelays.State())
	}

	if p.MultiStep == nil || !*p.MultiStep {
		t.Error("MultiStep: want true")
	}
	if p.RequiresSearchFirst == nil || *p.RequiresSearchFirst {
		t.Error("RequiresSearchFirst: want false")
	}
	if p.HasRateLimiting != nil {
		t.Error("HasRateLimiting: NULL must stay nil")
	}
	if p.KnownWorking == nil || !*p.KnownWorking {
		t.Error("KnownWorking: want true")
	}

	if p.CaptchaType == nil || *p.CaptchaType != "recaptcha" {
		t.Errorf("CaptchaType = %v, want recaptcha", p.CaptchaType)
	}
	if p.AnalyzedAt == nil || *p.AnalyzedAt != "2026-08-01 14:03:22" {
		t.Errorf("AnalyzedAt = %v, want full timestamp text", p.AnalyzedAt)
	}
}

func TestCount(t *testing.T) {
	dbPath := createTempDB(t)
	seedMinimal(t, dbPath, "a", 1)
	seedMinimal(t, dbPath, "b", 0)

	store := openStore(t, dbPath)
	ctx := context.Background()

	total, err := store.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 2 {
		t.Errorf("Count() = %d, want 2", total)
	}

	working, err := store.Count(ctx, &analysis.Query{KnownWorkingOnly: true})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if working != 1 {
		t.Errorf("Count(known working) = %d, want 1", working)
	}
}
