// Package testutil provides shared helpers for unit tests: a recording logger
// and small fixture builders.  It must never be imported by production code.
package testutil

import (
	"sync"

	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
)

// LogEntry records a single call made against RecordingLogger.
type LogEntry struct {
	Level  string
	Msg    string
	Fields []logging.Field
}

// RecordingLogger is a logging.Logger that captures every entry in memory so
// tests can assert on what was logged.  Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, fields []logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.record("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.record("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.record("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.record("error", msg, fields) }

func (l *RecordingLogger) Named(_ string) logging.Logger { return l }

// Entries returns a snapshot of everything logged so far.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns just the messages, in order.
func (l *RecordingLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Msg
	}
	return out
}

// HasMessage reports whether any recorded entry carries msg at the given level.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
