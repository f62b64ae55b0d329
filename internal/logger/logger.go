package logger

// Logger is the structured logging interface used across webrun.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields map[string]interface{})

	// Info logs an info-level message with optional fields
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields map[string]interface{})

	// Error logs an error-level message with optional fields
	Error(msg string, fields map[string]interface{})

	// WithField returns a new logger with the given field added to all subsequent entries
	WithField(key string, value interface{}) Logger
}
