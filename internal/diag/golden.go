package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Entry pairs a violation with the display path of its file.
type Entry struct {
	Path string
	Violation
}

type goldenViolation struct {
	Severity string
	Rule     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGolden renders violations into a stable, single-line-per-entry
// representation suitable for golden files and the short CLI format:
//
//	error case scripts/a.R:3:1 identifier "myVar" ...
//
// Entries are sorted by path, line, column, rule, message; the result has no
// trailing newline and is empty when nothing remains.
func FormatGolden(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	rendered := make([]goldenViolation, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, goldenViolation{
			Severity: e.Severity.String(),
			Rule:     e.RuleID,
			Path:     normalizePath(e.Path),
			Line:     e.Line,
			Column:   e.Column,
			Message:  sanitizeMessage(e.Message),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Rule != dj.Rule {
			return di.Rule < dj.Rule
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Rule, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

// SanitizeMessage keeps every rendered violation on a single line.
func SanitizeMessage(msg string) string {
	return sanitizeMessage(msg)
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
