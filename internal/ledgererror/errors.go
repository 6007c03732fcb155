// Package ledgererror defines the error taxonomy shared by the ledger core.
// Every foreseeable failure (bad input, corrupt storage, bad search pattern,
// malformed import) is reported through one of these types instead of a panic.
package ledgererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation targets an id the ledger does not hold.
var ErrNotFound = errors.New("transaction not found")

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects every ValidationError of one submission, in field order.
type FieldErrors []ValidationError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i := range fe {
		parts[i] = fe[i].Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a failure for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, ValidationError{Field: field, Message: message})
}

// For returns the message recorded for field, if any.
func (fe FieldErrors) For(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Err returns nil when no failure was collected, so callers can write
// `if err := errs.Err(); err != nil`.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// StorageError wraps a serialization or substrate failure.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s of %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ImportError reports a structural mismatch in an import document.
// Index is the offending transaction position, or -1 for document-level problems.
type ImportError struct {
	Index int
	Field string
	Msg   string
}

func (e *ImportError) Error() string {
	return "import failed: " + e.Msg
}

// NewDocumentError builds an ImportError that is not tied to a record.
func NewDocumentError(format string, args ...interface{}) *ImportError {
	return &ImportError{Index: -1, Msg: fmt.Sprintf(format, args...)}
}

// NewMissingFieldError builds the ImportError for a record lacking a required field.
func NewMissingFieldError(index int, field string) *ImportError {
	return &ImportError{
		Index: index,
		Field: field,
		Msg:   fmt.Sprintf("transaction at index %d is missing required field %q", index, field),
	}
}

// PatternError reports user-supplied search syntax that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
