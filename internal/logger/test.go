package logger

import "sync"

// LogEntry is a single log entry captured by the test logger.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// TestLogger captures log entries for assertions in tests. Loggers derived
// via WithField share the capture buffer and its lock.
type TestLogger struct {
	mu      *sync.RWMutex
	entries *[]LogEntry
	fields  map[string]interface{}
}

// NewTestLogger creates a new test logger.
func NewTestLogger() *TestLogger {
	entries := make([]LogEntry, 0)
	return &TestLogger{
		mu:      &sync.RWMutex{},
		entries: &entries,
		fields:  make(map[string]interface{}),
	}
}

func (l *TestLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *TestLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *TestLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *TestLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

// WithField returns a logger sharing the same capture buffer with an extra field.
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &TestLogger{
		mu:      l.mu,
		entries: l.entries,
		fields:  newFields,
	}
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	allFields := make(map[string]interface{})
	for k, v := range l.fields {
		allFields[k] = v
	}
	for k, v := range fields {
		allFields[k] = v
	}

	*l.entries = append(*l.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
	})
}

// Entries returns a copy of all captured log entries.
func (l *TestLogger) Entries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]LogEntry, len(*l.entries))
	copy(entries, *l.entries)
	return entries
}
