package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"optward-hq/callisto/pkg/analysis"
)

// Config contains configuration for the SQLite store.
type Config struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:        "data/submissions.db",
		BusyTimeout: 5 * time.Second,
	}
}

// Store reads form-analysis profiles from the submissions SQLite database.
// It is strictly read-only: it never creates the database file, never
// mutates rows, and never creates the schema.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// selectList is the SELECT column list, derived from the fixed column
// schema so scan order and schema order can never drift apart.
var selectList = strings.Join(analysis.ColumnNames(), ", ")

// Open opens the store at the configured path.
//
// It fails with analysis.ErrStoreNotFound when the database file does not
// exist (checked up front; sql.Open would silently create an empty file)
// and with analysis.ErrSchemaMissing when the form_analysis table is
// absent. Both checks run before any record query.
func Open(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	logger := slog.Default().With("component", "analysis.storage")

	if _, err := os.Stat(config.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, &analysis.StoreNotFoundError{Path: config.Path}
		}
		return nil, analysis.NewStorageError("open", err)
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, analysis.NewStorageError("open", err)
	}

	// Single reader, single connection; there is no concurrent access.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("analysis store opened", "path", config.Path)

	return s, nil
}

// initialize applies pragmas and verifies the expected schema exists.
func (s *Store) initialize() error {
	busyTimeout := s.config.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return analysis.NewStorageError("set_busy_timeout", err)
	}

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", TableName,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return &analysis.SchemaMissingError{Table: TableName}
	}
	if err != nil {
		return analysis.NewStorageError("schema_check", err)
	}

	return nil
}

// Query retrieves form profiles matching the query filters, ordered by
// broker id ascending. Zero results is a valid outcome.
func (s *Store) Query(ctx context.Context, query *analysis.Query) ([]*analysis.FormProfile, error) {
	if query == nil {
		query = &analysis.Query{}
	}

	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + selectList + " FROM " + TableName
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY broker_id ASC"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, analysis.NewStorageError("query", err)
	}
	defer rows.Close()

	profiles := []*analysis.FormProfile{}
	for rows.Next() {
		profile, err := scanRow(rows)
		if err != nil {
			return nil, analysis.NewStorageError("scan", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, analysis.NewStorageError("query", err)
	}

	return profiles, nil
}

// Count returns the number of profiles matching the query filters.
func (s *Store) Count(ctx context.Context, query *analysis.Query) (int64, error) {
	if query == nil {
		query = &analysis.Query{}
	}

	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM " + TableName
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, analysis.NewStorageError("count", err)
	}

	return count, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return analysis.NewStorageError("close", err)
	}
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the clause (without the "WHERE" keyword) and its arguments.
func buildWhereClause(query *analysis.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.BrokerID != "" {
		conditions = append(conditions, "broker_id = ?")
		args = append(args, query.BrokerID)
	}
	if query.KnownWorkingOnly {
		conditions = append(conditions, "known_working = 1")
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a FormProfile. Column order follows
// analysis.Columns exactly.
func scanRow(rows *sql.Rows) (*analysis.FormProfile, error) {
	var (
		brokerID                string
		pageURL                 sql.NullString
		formSelector            sql.NullString
		fieldMappings           sql.NullString
		captchaType             sql.NullString
		captchaSelector         sql.NullString
		submitButtonSelector    sql.NullString
		confirmationSelector    sql.NullString
		confirmationTextPattern sql.NullString
		searchFormDetails       sql.NullString
		requiredDelays          sql.NullString
		multiStep               sql.NullInt64
		requiresSearchFirst     sql.NullInt64
		hasRateLimiting         sql.NullInt64
		usesAjax                sql.NullInt64
		redirectAfterSubmit     sql.NullInt64
		knownWorking            sql.NullInt64
		analyzedAt              sql.NullString
	)

	err := rows.Scan(
		&brokerID, &pageURL, &formSelector, &fieldMappings,
		&captchaType, &captchaSelector, &submitButtonSelector,
		&confirmationSelector, &confirmationTextPattern,
		&searchFormDetails, &requiredDelays,
		&multiStep, &requiresSearchFirst, &hasRateLimiting,
		&usesAjax, &redirectAfterSubmit, &knownWorking,
		&analyzedAt,
	)
	if err != nil {
		return nil, err
	}

	return &analysis.FormProfile{
		BrokerID:                brokerID,
		PageURL:                 pageURL.String,
		FormSelector:            formSelector.String,
		FieldMappings:           analysis.DecodeJSONColumn(fieldMappings.String, fieldMappings.Valid),
		CaptchaType:             nullableString(captchaType),
		CaptchaSelector:         nullableString(captchaSelector),
		SubmitButtonSelector:    submitButtonSelector.String,
		ConfirmationSelector:    confirmationSelector.String,
		ConfirmationTextPattern: nullableString(confirmationTextPattern),
		SearchFormDetails:       analysis.DecodeJSONColumn(searchFormDetails.String, searchFormDetails.Valid),
		RequiredDelays:          analysis.DecodeJSONColumn(requiredDelays.String, requiredDelays.Valid),
		MultiStep:               nullableFlag(multiStep),
		RequiresSearchFirst:     nullableFlag(requiresSearchFirst),
		HasRateLimiting:         nullableFlag(hasRateLimiting),
		UsesAjax:                nullableFlag(usesAjax),
		RedirectAfterSubmit:     nullableFlag(redirectAfterSubmit),
		KnownWorking:            nullableFlag(knownWorking),
		AnalyzedAt:              nullableString(analyzedAt),
	}, nil
}

// nullableString converts a NULL-able column to *string, keeping NULL as nil.
func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullableFlag converts a NULL-able 0/1 column to *bool by truthiness,
// keeping NULL as nil.
func nullableFlag(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}
