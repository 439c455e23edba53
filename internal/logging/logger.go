// Package logging provides a logging abstraction that decouples the
// pipeline from a concrete logging framework, plus the PII masking layer
// applied to everything written to the log sink.
package logging

// Logger is the structured logging interface used throughout the
// application.
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

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// defaultLogger is used by components constructed without an explicit
// logger. It masks PII and logs at info level in text format.
var defaultLogger Logger = NewLogrusAdapter("info", "text", true)

// GetLogger returns the package default logger.
func GetLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the package default logger. Call once during
// startup, before constructing pipeline components.
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
