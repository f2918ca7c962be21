package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStdLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, SeverityWarning)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warning("shown warning")
	l.Logf(SeverityError, "shown %d", 42)
	l.Error(nil)
	l.Error(errors.New("boom"))

	out := buf.String()
	for _, s := range []string{"hidden debug", "hidden info"} {
		if strings.Contains(out, s) {
			t.Errorf("output contains %q:\n%s", s, out)
		}
	}
	for _, s := range []string{"WARNING: shown warning", "ERROR: shown 42", "ERROR: boom"} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("got %d lines, want 3", n)
	}
}

func TestSeverityString(t *testing.T) {
	tests := map[Severity]string{
		SeverityDebug:   "DEBUG",
		SeverityInfo:    "INFO",
		SeverityWarning: "WARNING",
		SeverityError:   "ERROR",
		Severity(99):    "UNKNOWN",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var l Logger = &r

	l.Warning("a")
	l.Logf(SeverityWarning, "b%d", 1)
	l.Error(errors.New("c"))
	l.Error(nil)

	want := []Entry{
		{SeverityWarning, "a"},
		{SeverityWarning, "b1"},
		{SeverityError, "c"},
	}
	if diff := cmp.Diff(want, r.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if r.Count(SeverityWarning) != 2 {
		t.Errorf("Count(Warning) = %d", r.Count(SeverityWarning))
	}

	var _ Logger = NoOp{}
}
