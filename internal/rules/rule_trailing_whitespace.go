package rules

import (
	"strings"

	"stylint/internal/diag"
	"stylint/internal/token"
)

const trailingDescription = "no whitespace at the end of a line"

// TrailingWhitespaceRule flags whitespace right before a newline or the end of
// input, including whitespace closing a line comment.
type TrailingWhitespaceRule struct{}

func NewTrailingWhitespaceRule() *TrailingWhitespaceRule { return &TrailingWhitespaceRule{} }

func (*TrailingWhitespaceRule) ID() string { return IDTrailingWhitespace }
func (*TrailingWhitespaceRule) Description() string { return trailingDescription }
func (*TrailingWhitespaceRule) DefaultSeverity() diag.Severity { return diag.SevWarning }

func (*TrailingWhitespaceRule) Check(in *Input) ([]diag.Violation, error) {
	var out []diag.Violation
	for i, tok := range in.Tokens {
		switch tok.Kind {
		case token.Whitespace:
		case token.Comment:
			if strings.HasPrefix(tok.Text, "/*") || strings.TrimRight(tok.Text, " \t\f\v\r") == tok.Text {
				continue
			}
		default:
			continue
		}
		if next := in.at(i + 1).Kind; next == token.Newline || next == token.EOF {
			out = append(out, diag.At(tok, "trailing whitespace"))
		}
	}
	return out, nil
}
