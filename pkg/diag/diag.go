package diag

import (
	"fmt"
	"io"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one recorded lexical fault or note, located by its
// 1-based source line.
type Diagnostic struct {
	Line     int
	Severity Severity
	Msg      string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] %s: %s", d.Line, d.Severity, d.Msg)
}

// Reporter receives diagnostics from the scanner. Reporting never stops
// the scan; the scanner continues from the next unconsumed character.
type Reporter interface {
	Error(line int, msg string)
	Warnf(line int, format string, args ...any)
}

// Sink collects the diagnostics of a single pass and writes them to w as
// they arrive. Each Sink owns its own state, so repeated or concurrent
// scans with separate sinks do not interfere.
type Sink struct {
	w     io.Writer
	diags []Diagnostic
	errs  int
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Error(line int, msg string) {
	s.record(Diagnostic{Line: line, Severity: SeverityError, Msg: msg})
	s.errs++
}

func (s *Sink) Warnf(line int, format string, args ...any) {
	s.record(Diagnostic{Line: line, Severity: SeverityWarning, Msg: fmt.Sprintf(format, args...)})
}

func (s *Sink) record(d Diagnostic) {
	s.diags = append(s.diags, d)
	if s.w != nil {
		fmt.Fprintln(s.w, d)
	}
}

// HadError reports whether any error-severity diagnostic was recorded
// since the last Reset. Warnings do not count.
func (s *Sink) HadError() bool { return s.errs > 0 }

// Diagnostics returns the recorded diagnostics in report order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diags }

// Reset clears recorded state so the sink can serve another pass.
func (s *Sink) Reset() {
	s.diags = nil
	s.errs = 0
}
