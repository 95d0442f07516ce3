package analysis

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two fatal store-level conditions. Wrap-aware
// callers can match them with errors.Is regardless of the carrying type.
var (
	// ErrStoreNotFound means the backing database file does not exist.
	ErrStoreNotFound = errors.New("analysis store not found")

	// ErrSchemaMissing means the form_analysis table is absent.
	ErrSchemaMissing = errors.New("form_analysis table does not exist")
)

// StoreNotFoundError reports a missing database file. It is raised before
// any query executes, so no partial output is ever produced.
type StoreNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("analysis store not found at %s", e.Path)
}

// Unwrap makes the error match ErrStoreNotFound via errors.Is.
func (e *StoreNotFoundError) Unwrap() error { return ErrStoreNotFound }

// ExitCode returns the process exit code for this failure.
func (e *StoreNotFoundError) ExitCode() int { return 2 }

// SchemaMissingError reports that the records table has not been created.
type SchemaMissingError struct {
	Table string
}

// Error implements the error interface.
func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("table %s does not exist (run the database migration first)", e.Table)
}

// Unwrap makes the error match ErrSchemaMissing via errors.Is.
func (e *SchemaMissingError) Unwrap() error { return ErrSchemaMissing }

// ExitCode returns the process exit code for this failure.
func (e *SchemaMissingError) ExitCode() int { return 3 }

// StorageError represents a failure in the store layer.
type StorageError struct {
	Operation string // Operation that failed ("open", "query", "scan", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error { return e.Cause }

// NewStorageError creates a new StorageError.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Cause:     cause,
	}
}

// ExportError represents a failure while rendering profiles.
type ExportError struct {
	Format      string // Export format ("full", "csv", "markdown", etc.)
	RecordCount int    // Number of records being exported
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, record_count=%d]: %v", e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error { return e.Cause }

// NewExportError creates a new ExportError.
func NewExportError(format string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		RecordCount: recordCount,
		Cause:       cause,
	}
}
