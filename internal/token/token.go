package token

import (
	"stylint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind   Kind
	Span   source.Span
	Text   string
	Line   uint32 // 1-based line of Span.Start
	Column uint32 // 1-based byte column of Span.Start
}

// Is reports whether the token is an operator or punctuation spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Operator || t.Kind == Punctuation) && t.Text == text
}

// IsWord reports whether the token is the identifier or keyword name.
func (t Token) IsWord(name string) bool {
	return (t.Kind == Identifier || t.Kind == Keyword) && t.Text == name
}

// IsFunction reports whether the token opens a function header: the keyword
// or the \ shorthand.
func (t Token) IsFunction() bool {
	return t.IsWord("function") || t.Is(Lambda)
}

// IsOpenBracket reports whether the token is '(', '[' or '[['.
func (t Token) IsOpenBracket() bool {
	return t.Kind == Punctuation && (t.Text == "(" || t.Text == "[" || t.Text == "[[")
}

// IsCloseBracket reports whether the token is ')', ']' or ']]'.
func (t Token) IsCloseBracket() bool {
	return t.Kind == Punctuation && (t.Text == ")" || t.Text == "]" || t.Text == "]]")
}

// IsCode reports whether the token carries code (not layout, not EOF).
func (t Token) IsCode() bool {
	return !t.Kind.IsLayout() && t.Kind != EOF
}

// Name returns the identifier's name without surrounding backticks.
func (t Token) Name() string {
	if t.Kind != Identifier {
		return t.Text
	}
	if n := len(t.Text); n >= 2 && t.Text[0] == '`' && t.Text[n-1] == '`' {
		return t.Text[1 : n-1]
	}
	return t.Text
}
