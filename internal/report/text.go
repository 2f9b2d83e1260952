package report

import (
	"fmt"
	"io"

	"stylint/internal/diag"
)

// textRenderer: <path>:<line>:<col>: [<severity>] <rule_id>: <message>
type textRenderer struct{}

func (*textRenderer) Begin(io.Writer) error { return nil }
func (*textRenderer) End(io.Writer) error   { return nil }

func (*textRenderer) Report(w io.Writer, r *Report) error {
	for _, f := range r.Failures {
		if _, err := fmt.Fprintln(w, FormatFailure(r.Path, f)); err != nil {
			return err
		}
	}
	for _, v := range r.Violations {
		if _, err := fmt.Fprintln(w, FormatViolation(r.Path, v)); err != nil {
			return err
		}
	}
	return nil
}

// FormatViolation renders one violation as a text-format line.
func FormatViolation(path string, v diag.Violation) string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s: %s", path, v.Line, v.Column, v.Severity, v.RuleID, diag.SanitizeMessage(v.Message))
}

// FormatFailure renders one failure: <path>: [error] <kind>[(<rule>)]: <message>
func FormatFailure(path string, f diag.Failure) string {
	kind := f.Kind.String()
	if f.RuleID != "" {
		kind += "(" + f.RuleID + ")"
	}
	return fmt.Sprintf("%s: [error] %s: %s", path, kind, diag.SanitizeMessage(f.Message))
}

// shortRenderer buffers everything and prints the golden format, globally
// sorted, at End.
type shortRenderer struct {
	entries  []diag.Entry
	failures []string
}

func (*shortRenderer) Begin(io.Writer) error { return nil }

func (s *shortRenderer) Report(_ io.Writer, r *Report) error {
	for _, v := range r.Violations {
		s.entries = append(s.entries, diag.Entry{Path: r.Path, Violation: v})
	}
	for _, f := range r.Failures {
		s.failures = append(s.failures, FormatFailure(r.Path, f))
	}
	return nil
}

func (s *shortRenderer) End(w io.Writer) error {
	for _, line := range s.failures {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if out := diag.FormatGolden(s.entries); out != "" {
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}
