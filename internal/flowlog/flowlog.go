// Package flowlog wraps a single *log.Logger with the severity-prefixed
// message style of godoctor's doctor.Log (doctor/log.go), trimmed to the
// two severities a builder actually needs: an informational note about a
// modeling choice (e.g. a with statement), and a warning about something
// that is legal ES5 but worth a second look (e.g. a hoisted var shadowing a
// parameter name).
package flowlog

import (
	"io"
	"log"
	"os"
)

// Logger is a non-fatal diagnostic sink. A nil *Logger is valid and
// discards everything, so callers that don't care about diagnostics don't
// need to construct one.
type Logger struct {
	std *log.Logger
}

// New returns a Logger writing to w, or to os.Stderr if w is nil.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{std: log.New(w, "", log.LstdFlags)}
}

// Info records an informational diagnostic: a modeling decision the
// builder made that a reader of the resulting graph might want to know
// about, not a problem with the input.
func (l *Logger) Info(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.std.Printf(format, args...)
}

// Warn records a diagnostic about input that is legal ES5 but surprising:
// the builder still produces a correct graph, but the source may not do
// what its author expects.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.std.Printf("Warning: "+format, args...)
}
