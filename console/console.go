// Package console defines where testbench messages go. Messages are plain
// lines; framing is left to the transport.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Reporter receives one message per call.
type Reporter interface {
	Report(msg string)
}

// Writer reports to an io.Writer, one line per message.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Report writes msg followed by a newline unless it already ends with one.
func (r *Writer) Report(msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	// The console is best effort, a lost line does not change the result.
	_, _ = io.WriteString(r.w, msg)
}

// Logger reports through a slog.Logger at Info level.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a Logger. A nil logger means slog.Default().
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}

	return &Logger{log: log}
}

// Report logs msg.
func (r *Logger) Report(msg string) {
	r.log.Info(strings.TrimRight(msg, "\n"))
}

// Multi fans out every message to all reporters.
type Multi []Reporter

// Report forwards msg to each reporter in order.
func (m Multi) Report(msg string) {
	for _, r := range m {
		r.Report(msg)
	}
}

// Lines keeps all messages in memory.
type Lines struct {
	mu    sync.Mutex
	lines []string
}

// Report appends msg.
func (l *Lines) Report(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, strings.TrimRight(msg, "\n"))
}

// Lines returns a copy of the messages received so far.
func (l *Lines) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.lines...)
}

// Contains reports whether any message contains substr.
func (l *Lines) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

// Reportf formats and reports a message.
func Reportf(r Reporter, format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...))
}
