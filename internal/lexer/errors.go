package lexer

import (
	"fmt"
	"strings"

	"stylint/internal/source"
)

// ScanError describes malformed source: an unterminated string, block comment or
// quoted name, or a byte outside the grammar. Span covers the Invalid token.
type ScanError struct {
	Path   string
	Span   source.Span
	Line   uint32
	Column uint32
	Msg    string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// ScanErrors is every ScanError of one scan, in source order.
type ScanErrors []*ScanError

func (errs ScanErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no scan errors"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is/As.
func (errs ScanErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}
