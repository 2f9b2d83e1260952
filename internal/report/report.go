// Package report turns per-file lint results into user-facing output.
//
// A Report is built once per file and never mutated afterwards; renderers and
// the exit-status tally only read it. Output goes through a Sink that
// serializes writes from concurrent producers.
package report

import (
	"slices"

	"stylint/internal/diag"
	"stylint/internal/source"
)

// Summary counts a report's contents.
type Summary struct {
	Errors   int `json:"errors" msgpack:"errors"`
	Warnings int `json:"warnings" msgpack:"warnings"`
	Failures int `json:"failures" msgpack:"failures"`
}

// Report is the lint result of one file.
type Report struct {
	Path       string           `json:"path" msgpack:"path"`
	Violations []diag.Violation `json:"violations" msgpack:"violations"`
	Failures   []diag.Failure   `json:"failures,omitempty" msgpack:"failures"`
	Summary    Summary          `json:"summary" msgpack:"summary"`

	file *source.File // для pretty-вывода, не сериализуется
}

// New builds a report; violations must already be ordered.
func New(path string, vs []diag.Violation, failures []diag.Failure) *Report {
	r := &Report{
		Path:       path,
		Violations: vs,
		Failures:   failures,
	}
	if r.Violations == nil {
		r.Violations = []diag.Violation{}
	}
	r.Summary = summarize(r.Violations, r.Failures)
	return r
}

// WithSource attaches the scanned file so pretty output can quote lines.
func (r *Report) WithSource(f *source.File) *Report {
	c := *r
	c.file = f
	return &c
}

// Source returns the attached file, nil for reports decoded from the cache.
func (r *Report) Source() *source.File {
	return r.file
}

// Fatal reports whether the file could not be checked completely: a failure
// or a scan violation.
func (r *Report) Fatal() bool {
	if len(r.Failures) > 0 {
		return true
	}
	for _, v := range r.Violations {
		if v.RuleID == diag.ScanRuleID {
			return true
		}
	}
	return false
}

// Policy rewrites severities before rendering.
type Policy struct {
	WarningsAsErrors bool
	NoWarnings       bool
}

// Apply returns a report with the policy applied; r itself is left untouched.
func (p Policy) Apply(r *Report) *Report {
	if !p.WarningsAsErrors && !p.NoWarnings {
		return r
	}
	vs := make([]diag.Violation, 0, len(r.Violations))
	for _, v := range r.Violations {
		if v.Severity == diag.SevWarning {
			if p.NoWarnings {
				continue
			}
			if p.WarningsAsErrors {
				v = v.WithSeverity(diag.SevError)
			}
		}
		vs = append(vs, v)
	}
	out := New(r.Path, vs, slices.Clone(r.Failures))
	out.file = r.file
	return out
}

func summarize(vs []diag.Violation, fs []diag.Failure) Summary {
	var s Summary
	for _, v := range vs {
		switch v.Severity {
		case diag.SevError:
			s.Errors++
		case diag.SevWarning:
			s.Warnings++
		}
	}
	s.Failures = len(fs)
	return s
}
