// Package logging provides the leveled logger handed to the directory session.
// Entries are written as JSON lines, or as colored single lines when the sink
// is a terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const fileMode = 0o644

// DefaultFile is where entries go when no log file is configured.
const DefaultFile = "logs.log"

// Logger is the logging collaborator used across the tool.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	// WithBatch returns a logger that tags every entry with a batch ID
	WithBatch(batchID string) Logger
	ChangeLevel(level Level)
	// Close flushes and releases the sink
	Close() error
}

type sink struct {
	out        io.Writer
	closer     io.Closer
	isTerminal bool
	lock       chan struct{}
}

type logger struct {
	level   *Level
	batchID string
	sink    *sink
}

type logEntry struct {
	Level   Level     `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
	BatchID string    `json:"batch_id,omitempty"`
}

// NewLogger creates a logger writing to out. Terminals get pretty output.
func NewLogger(out io.Writer, level Level) Logger {
	return newLogger(out, nil, level)
}

// NewFileLogger opens (appending) the file at path and logs into it.
// An empty path returns a logger that discards everything.
func NewFileLogger(path string, level Level) (Logger, error) {
	if path == "" {
		return newLogger(io.Discard, nil, level), nil
	}

	//nolint:gosec // G304: path comes from local configuration
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return newLogger(f, f, level), nil
}

func newLogger(out io.Writer, closer io.Closer, level Level) *logger {
	return &logger{
		level: &level,
		sink: &sink{
			out:        out,
			closer:     closer,
			isTerminal: checkIfTerminal(out),
			lock:       make(chan struct{}, 1),
		},
	}
}

func (l *logger) logf(level Level, format string, args ...any) {
	if level < *l.level {
		return
	}

	entry := logEntry{
		Level:   level,
		Time:    time.Now(),
		BatchID: l.batchID,
	}

	switch {
	case len(args) == 1 && format == "":
		entry.Message = args[0]
	case len(args) != 1 && format == "":
		entry.Message = fmt.Sprint(args...)
	case format != "":
		entry.Message = fmt.Sprintf(format, args...)
	}

	if err, ok := entry.Message.(error); ok {
		entry.Message = err.Error()
	}

	l.sink.lock <- struct{}{}
	defer func() {
		<-l.sink.lock
	}()

	if l.sink.isTerminal {
		l.prettyPrint(&entry)
		return
	}

	//nolint:errcheck // nowhere to report a failing log sink
	_ = json.NewEncoder(l.sink.out).Encode(entry)
}

func (l *logger) prettyPrint(e *logEntry) {
	out := l.sink.out

	fmt.Fprintf(out, "\u001B[38;5;%dm%s\u001B[0m [%s]", e.Level.color(), e.Level.String()[0:4], e.Time.Format(time.TimeOnly))

	if e.BatchID != "" {
		fmt.Fprintf(out, " \u001B[38;5;8m%s\u001B[0m", e.BatchID)
	}

	fmt.Fprintf(out, " %v\n", e.Message)
}

func (l *logger) Debug(args ...any) { l.logf(DEBUG, "", args...) }

func (l *logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }

func (l *logger) Info(args ...any) { l.logf(INFO, "", args...) }

func (l *logger) Infof(format string, args ...any) { l.logf(INFO, format, args...) }

func (l *logger) Notice(args ...any) { l.logf(NOTICE, "", args...) }

func (l *logger) Noticef(format string, args ...any) { l.logf(NOTICE, format, args...) }

func (l *logger) Warn(args ...any) { l.logf(WARN, "", args...) }

func (l *logger) Warnf(format string, args ...any) { l.logf(WARN, format, args...) }

func (l *logger) Error(args ...any) { l.logf(ERROR, "", args...) }

func (l *logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }

func (l *logger) WithBatch(batchID string) Logger {
	return &logger{
		level:   l.level,
		batchID: batchID,
		sink:    l.sink,
	}
}

func (l *logger) ChangeLevel(level Level) {
	*l.level = level
}

func (l *logger) Close() error {
	if l.sink.closer == nil {
		return nil
	}

	return l.sink.closer.Close()
}

func checkIfTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}
