package rules

import (
	"fmt"
	"strings"

	"stylint/internal/diag"
	"stylint/internal/token"
)

const spacingDescription = "spaces around operators, after commas and control keywords; none inside brackets"

// SpacingRule checks horizontal whitespace around operators, brackets, commas,
// control keywords and braces.
type SpacingRule struct {
	spaced  map[string]struct{}
	noSpace map[string]struct{}
}

func NewSpacingRule(opts Options) *SpacingRule {
	return &SpacingRule{
		spaced:  toSet(opts.SpacedOperators),
		noSpace: toSet(opts.NoSpaceOperators),
	}
}

func (r *SpacingRule) ID() string { return IDSpacing }
func (r *SpacingRule) Description() string { return spacingDescription }
func (r *SpacingRule) DefaultSeverity() diag.Severity { return diag.SevError }

func (r *SpacingRule) Check(in *Input) ([]diag.Violation, error) {
	var out []diag.Violation
	add := func(tok token.Token, format string, args ...any) {
		out = append(out, diag.At(tok, fmt.Sprintf(format, args...)))
	}
	for i, tok := range in.Tokens {
		switch {
		case tok.Kind == token.Operator:
			if msg := r.checkOperator(in, i); msg != "" {
				add(tok, "%s", msg)
			}

		case tok.IsOpenBracket():
			if r.spaceAfter(in, i) && !in.lineEndAfter(i+1) {
				add(tok, "unexpected space after '%s'", tok.Text)
			}

		case tok.IsCloseBracket():
			// x[1, ] — идиома, пробел после запятой перед ']' допустим;
			// f( ) уже отмечен у открывающей скобки
			if r.spaceBefore(in, i) && !in.at(i-2).Is(",") && !in.at(i-2).IsOpenBracket() {
				add(tok, "unexpected space before '%s'", tok.Text)
			}

		case tok.Is(","):
			r.checkComma(in, i, add)

		case tok.Kind == token.Keyword && (tok.Text == "if" || tok.Text == "for" || tok.Text == "while"),
			tok.IsWord("switch"):
			if in.at(i + 1).Is("(") {
				add(tok, "missing space after '%s'", tok.Text)
			}

		case tok.Is("{"):
			prev := in.at(i - 1)
			if prev.Is(")") || prev.IsWord("else") || prev.IsWord("repeat") || prev.IsFunction() {
				add(tok, "missing space before '{'")
			}

		case tok.IsWord("else"):
			if in.at(i - 1).Is("}") {
				add(tok, "missing space between '}' and 'else'")
			}
		}
	}
	return out, nil
}

func (r *SpacingRule) checkOperator(in *Input, i int) string {
	op := in.Tokens[i].Text
	_, noSpace := r.noSpace[op]
	if noSpace {
		var sides []string
		if r.spaceBefore(in, i) {
			sides = append(sides, "before")
		}
		if r.spaceAfter(in, i) && !in.lineEndAfter(i+1) {
			sides = append(sides, "after")
		}
		if len(sides) == 0 {
			return ""
		}
		return fmt.Sprintf("unexpected space %s '%s'", strings.Join(sides, " and "), op)
	}

	_, spaced := r.spaced[op]
	if !spaced && !token.IsSpecialOperator(op) {
		return ""
	}
	if token.CanBeUnary(op) && r.isUnary(in, i) {
		return ""
	}

	var missing, extra []string
	switch prev := in.at(i - 1); {
	case i == 0 || prev.Kind == token.Newline:
		// начало строки
	case prev.Kind == token.Whitespace:
		if !in.indentBefore(i-1) && prev.Text != " " {
			extra = append(extra, "before")
		}
	default:
		missing = append(missing, "before")
	}
	switch next := in.at(i + 1); {
	case in.lineEndAfter(i):
	case next.Kind == token.Whitespace:
		if !in.lineEndAfter(i+1) && next.Text != " " {
			extra = append(extra, "after")
		}
	default:
		missing = append(missing, "after")
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing space %s '%s'", strings.Join(missing, " and "), op))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra space %s '%s'", strings.Join(extra, " and "), op))
	}
	return strings.Join(parts, ", ")
}

// isUnary: оператор стоит в начале выражения.
func (r *SpacingRule) isUnary(in *Input, i int) bool {
	if in.firstOnLine(i) {
		return true
	}
	p := in.prevCode(i)
	if p < 0 {
		return true
	}
	prev := in.Tokens[p]
	switch {
	case prev.Kind == token.Operator:
		return true
	case prev.IsOpenBracket(), prev.Is("{"), prev.Is(","), prev.Is(";"):
		return true
	case prev.Kind == token.Keyword:
		switch prev.Text {
		case "else", "repeat", "in", "return":
			return true
		}
	case prev.Is(")"):
		// function(x) -x: после заголовка функции начинается тело
		if open := in.matchingOpen(p); open >= 0 {
			if w := in.prevCode(open); w >= 0 && in.Tokens[w].IsFunction() {
				return true
			}
		}
	}
	return false
}

func (r *SpacingRule) checkComma(in *Input, i int, add func(token.Token, string, ...any)) {
	tok := in.Tokens[i]
	if r.spaceBefore(in, i) {
		before := in.at(i - 2)
		if !before.Is("[") && !before.Is("[[") && !before.Is(",") {
			add(tok, "unexpected space before ','")
		}
	}
	next := in.at(i + 1)
	switch {
	case next.Kind == token.Whitespace, in.lineEndAfter(i), next.IsCloseBracket():
	default:
		add(tok, "missing space after ','")
	}
}

// spaceBefore reports a whitespace run right before Tokens[i] that is not
// line-start indentation.
func (r *SpacingRule) spaceBefore(in *Input, i int) bool {
	return in.at(i-1).Kind == token.Whitespace && !in.indentBefore(i-1)
}

func (r *SpacingRule) spaceAfter(in *Input, i int) bool {
	return in.at(i+1).Kind == token.Whitespace
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}
