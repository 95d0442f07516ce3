package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "store.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any validation rules fail. All validation errors are
// collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Store.Path == "" {
		errs = append(errs, FieldError{Field: "store.path", Message: "must not be empty"})
	}
	if cfg.Store.BusyTimeout < 0 {
		errs = append(errs, FieldError{Field: "store.busy_timeout", Message: "must not be negative"})
	}

	if !validFormat(cfg.Export.Format) {
		errs = append(errs, FieldError{
			Field:   "export.format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(Formats, ", ")),
		})
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validFormat reports whether format is a supported export format.
func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
