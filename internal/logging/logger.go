// Package logging is the leveled logger used for diagnostics that are
// not worth failing an operation over.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Severity of a log message.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger receives diagnostics.
type Logger interface {
	Logf(severity Severity, format string, args ...any)
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(err error)
}

// StdLogger writes through the standard log package, dropping messages
// below a minimum severity.
type StdLogger struct {
	out      *log.Logger
	minLevel Severity
}

// NewStdLogger returns a logger writing to w.
func NewStdLogger(w io.Writer, minLevel Severity) *StdLogger {
	return &StdLogger{
		out:      log.New(w, "", log.Ltime),
		minLevel: minLevel,
	}
}

func (l *StdLogger) log(severity Severity, msg string) {
	if severity < l.minLevel {
		return
	}
	l.out.Output(3, severity.String()+": "+msg)
}

// Logf logs a formatted message.
func (l *StdLogger) Logf(severity Severity, format string, args ...any) {
	l.log(severity, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Debug(msg string)   { l.log(SeverityDebug, msg) }
func (l *StdLogger) Info(msg string)    { l.log(SeverityInfo, msg) }
func (l *StdLogger) Warning(msg string) { l.log(SeverityWarning, msg) }

// Error logs err at error severity. A nil err is ignored.
func (l *StdLogger) Error(err error) {
	if err != nil {
		l.log(SeverityError, err.Error())
	}
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) Logf(Severity, string, ...any) {}
func (NoOp) Debug(string)                  {}
func (NoOp) Info(string)                   {}
func (NoOp) Warning(string)                {}
func (NoOp) Error(error)                   {}

// Entry is one message kept by a Recorder.
type Entry struct {
	Severity Severity
	Msg      string
}

// Recorder keeps every message in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) add(severity Severity, msg string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Severity: severity, Msg: msg})
	r.mu.Unlock()
}

func (r *Recorder) Logf(severity Severity, format string, args ...any) {
	r.add(severity, fmt.Sprintf(format, args...))
}

func (r *Recorder) Debug(msg string)   { r.add(SeverityDebug, msg) }
func (r *Recorder) Info(msg string)    { r.add(SeverityInfo, msg) }
func (r *Recorder) Warning(msg string) { r.add(SeverityWarning, msg) }

func (r *Recorder) Error(err error) {
	if err != nil {
		r.add(SeverityError, err.Error())
	}
}

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Count returns how many messages of the given severity were recorded.
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}
