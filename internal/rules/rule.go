package rules

import (
	"sort"

	"stylint/internal/diag"
	"stylint/internal/source"
	"stylint/internal/token"
)

// Rule is one style check.
type Rule interface {
	ID() string
	Description() string
	DefaultSeverity() diag.Severity
	Check(in *Input) ([]diag.Violation, error)
}

// Active is a rule with the severity it reports at.
type Active struct {
	Rule     Rule
	Severity diag.Severity
}

// Input is the read-only view a rule checks. Tokens is the full stream
// ending with EOF; rules must not modify it.
type Input struct {
	File   *source.File
	Tokens []token.Token
}

// NewInput wraps a scanned file.
func NewInput(file *source.File, toks []token.Token) *Input {
	return &Input{File: file, Tokens: toks}
}

func (in *Input) at(i int) token.Token {
	if i < 0 || i >= len(in.Tokens) {
		return token.Token{Kind: token.EOF}
	}
	return in.Tokens[i]
}

// prevCode returns the index of the nearest code token before i, or -1.
func (in *Input) prevCode(i int) int {
	for j := i - 1; j >= 0; j-- {
		if in.Tokens[j].IsCode() {
			return j
		}
	}
	return -1
}

// nextCode returns the index of the nearest code token after i, or -1.
func (in *Input) nextCode(i int) int {
	for j := i + 1; j < len(in.Tokens); j++ {
		if in.Tokens[j].IsCode() {
			return j
		}
	}
	return -1
}

// indentBefore reports whether Tokens[i] is a whitespace run that starts a line.
func (in *Input) indentBefore(i int) bool {
	if in.at(i).Kind != token.Whitespace {
		return false
	}
	return i == 0 || in.Tokens[i-1].Kind == token.Newline
}

// lineEndAfter reports whether nothing but a comment follows Tokens[i] on its line.
func (in *Input) lineEndAfter(i int) bool {
	switch in.at(i + 1).Kind {
	case token.Newline, token.EOF, token.Comment:
		return true
	}
	return false
}

// firstOnLine reports whether Tokens[i] is the first non-whitespace token of its line.
func (in *Input) firstOnLine(i int) bool {
	j := i - 1
	if in.at(j).Kind == token.Whitespace {
		j--
	}
	return j < 0 || in.Tokens[j].Kind == token.Newline
}

// tokenAt returns the token whose span contains off.
func (in *Input) tokenAt(off uint32) (token.Token, bool) {
	i := sort.Search(len(in.Tokens), func(i int) bool {
		return in.Tokens[i].Span.End > off
	})
	if i >= len(in.Tokens) || !in.Tokens[i].Span.Contains(off) {
		return token.Token{}, false
	}
	return in.Tokens[i], true
}

// matchingOpen walks back from the closer at i to its opener, counting nesting
// over code tokens. Returns -1 when unbalanced.
func (in *Input) matchingOpen(i int) int {
	depth := 0
	for j := i; j >= 0; j-- {
		t := in.Tokens[j]
		switch {
		case t.IsCloseBracket():
			depth++
		case t.IsOpenBracket():
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
