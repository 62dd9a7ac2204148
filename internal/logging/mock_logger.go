package logging

import (
	"fmt"
	"strings"
	"sync"
)

// MockEntry is one captured log line.
type MockEntry struct {
	Level   Level
	BatchID string
	Message string
}

// MockLogger keeps entries in memory for assertions in tests.
type MockLogger struct {
	mu      *sync.Mutex
	entries *[]MockEntry
	level   *Level
	batchID string
	closed  *bool
}

// NewMockLogger creates a MockLogger that records entries at or above level.
func NewMockLogger(level Level) *MockLogger {
	return &MockLogger{
		mu:      &sync.Mutex{},
		entries: &[]MockEntry{},
		level:   &level,
		closed:  new(bool),
	}
}

func (m *MockLogger) logf(level Level, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if level < *m.level {
		return
	}

	msg := fmt.Sprint(args...)
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}

	*m.entries = append(*m.entries, MockEntry{Level: level, BatchID: m.batchID, Message: msg})
}

func (m *MockLogger) Debug(args ...any) { m.logf(DEBUG, "", args...) }
func (m *MockLogger) Debugf(format string, args ...any) { m.logf(DEBUG, format, args...) }
func (m *MockLogger) Info(args ...any) { m.logf(INFO, "", args...) }
func (m *MockLogger) Infof(format string, args ...any) { m.logf(INFO, format, args...) }
func (m *MockLogger) Notice(args ...any) { m.logf(NOTICE, "", args...) }
func (m *MockLogger) Noticef(format string, args ...any) { m.logf(NOTICE, format, args...) }
func (m *MockLogger) Warn(args ...any) { m.logf(WARN, "", args...) }
func (m *MockLogger) Warnf(format string, args ...any) { m.logf(WARN, format, args...) }
func (m *MockLogger) Error(args ...any) { m.logf(ERROR, "", args...) }
func (m *MockLogger) Errorf(format string, args ...any) { m.logf(ERROR, format, args...) }

// WithBatch shares the entry buffer with the parent logger.
func (m *MockLogger) WithBatch(batchID string) Logger {
	child := *m
	child.batchID = batchID

	return &child
}

func (m *MockLogger) ChangeLevel(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()

	*m.level = level
}

func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	*m.closed = true

	return nil
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []MockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockEntry, len(*m.entries))
	copy(out, *m.entries)

	return out
}

// EntriesAt returns the entries logged at level.
func (m *MockLogger) EntriesAt(level Level) []MockEntry {
	var out []MockEntry

	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}

	return out
}

// Contains reports whether any entry at level contains substr.
func (m *MockLogger) Contains(level Level, substr string) bool {
	for _, e := range m.EntriesAt(level) {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}

	return false
}

// Closed reports whether Close was called.
func (m *MockLogger) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.closed
}
