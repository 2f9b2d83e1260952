package rules

import (
	"fmt"

	"stylint/internal/diag"
	"stylint/internal/token"
)

const braceDescription = "braces follow the configured placement; one statement per line"

// BracePlacementRule checks where '{', '}' and 'else' sit relative to their
// header and flags statements packed onto one line.
type BracePlacementRule struct {
	sameLine bool
}

func NewBracePlacementRule(opts Options) *BracePlacementRule {
	return &BracePlacementRule{sameLine: opts.BraceSameLine}
}

func (r *BracePlacementRule) ID() string { return IDBracePlacement }
func (r *BracePlacementRule) Description() string { return braceDescription }
func (r *BracePlacementRule) DefaultSeverity() diag.Severity { return diag.SevError }

func (r *BracePlacementRule) Check(in *Input) ([]diag.Violation, error) {
	var out []diag.Violation
	for i, tok := range in.Tokens {
		switch {
		case tok.Is("{"):
			if header, line, ok := r.header(in, i); ok {
				switch {
				case r.sameLine && tok.Line != line:
					out = append(out, diag.At(tok, fmt.Sprintf("opening brace should be on the same line as '%s'", header)))
				case !r.sameLine && tok.Line == line:
					out = append(out, diag.At(tok, fmt.Sprintf("opening brace should be on its own line after '%s'", header)))
				}
			}
			if n := r.nextOnLine(in, i); n.IsCode() && !n.Is("}") {
				out = append(out, diag.At(tok, "statement should not follow '{' on the same line"))
			}

		case tok.Is("}"):
			if p := r.prevOnLine(in, i); p.IsCode() && !p.Is("{") {
				out = append(out, diag.At(tok, "'}' should start its own line"))
			}

		case tok.IsWord("else"):
			p := in.prevCode(i)
			if r.sameLine && p >= 0 && in.Tokens[p].Is("}") && in.Tokens[p].Line != tok.Line {
				out = append(out, diag.At(tok, "'else' should be on the same line as the closing '}'"))
			}

		case tok.Is(";"):
			if in.lineEndAfter(i) || (in.at(i+1).Kind == token.Whitespace && in.lineEndAfter(i+1)) {
				out = append(out, diag.At(tok, "trailing ';'"))
			} else {
				out = append(out, diag.At(tok, "statements separated by ';' should be on separate lines"))
			}
		}
	}
	return out, nil
}

// header finds the construct that owns the brace at i: the closing paren of an
// if/for/while/switch/function (or \) header, or else/repeat. Returns the header word
// and the line the brace should share with it.
func (r *BracePlacementRule) header(in *Input, i int) (string, uint32, bool) {
	p := in.prevCode(i)
	if p < 0 {
		return "", 0, false
	}
	prev := in.Tokens[p]
	switch {
	case prev.IsWord("else"), prev.IsWord("repeat"):
		return prev.Text, prev.Line, true
	case prev.Is(")"):
		open := in.matchingOpen(p)
		if open < 0 {
			return "", 0, false
		}
		w := in.prevCode(open)
		if w < 0 {
			return "", 0, false
		}
		hw := in.Tokens[w]
		if hw.IsFunction() || ((hw.Kind == token.Keyword || hw.Kind == token.Identifier) && token.IsHeaderWord(hw.Text)) {
			return hw.Text, prev.Line, true
		}
	}
	return "", 0, false
}

func (r *BracePlacementRule) nextOnLine(in *Input, i int) token.Token {
	n := in.at(i + 1)
	if n.Kind == token.Whitespace {
		n = in.at(i + 2)
	}
	return n
}

func (r *BracePlacementRule) prevOnLine(in *Input, i int) token.Token {
	p := in.at(i - 1)
	if p.Kind == token.Whitespace {
		p = in.at(i - 2)
	}
	return p
}
