// Package logging provides the logging abstraction used by the ledger core.
// Components receive a Logger through their constructors and never reach
// for a global logger, which keeps them testable with MockLogger.
package logging

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Discard returns a Logger that drops everything. Useful as a default when
// a caller does not inject one.
func Discard() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(string, ...Field)                 {}
func (discard) Info(string, ...Field)                  {}
func (discard) Warn(string, ...Field)                  {}
func (discard) Error(string, ...Field)                 {}
func (d discard) WithError(error) Logger               { return d }
func (d discard) WithField(string, interface{}) Logger { return d }
func (d discard) WithFields(...Field) Logger           { return d }
