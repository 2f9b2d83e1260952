package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stylint/internal/diag"
)

// prettyRenderer печатает text-строку, затем строку исходника и подчёркивание
// ^~~~ под токеном. В конце — сводка.
type prettyRenderer struct {
	opts  PrettyOpts
	err   *color.Color
	warn  *color.Color
	path  *color.Color
	rule  *color.Color
	caret *color.Color
	dim   *color.Color
	tally Tally
}

func newPrettyRenderer(opts PrettyOpts) *prettyRenderer {
	p := &prettyRenderer{
		opts:  opts,
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		path:  color.New(color.Bold),
		rule:  color.New(color.FgCyan),
		caret: color.New(color.FgGreen, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.path, p.rule, p.caret, p.dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *prettyRenderer) Begin(io.Writer) error { return nil }

func (p *prettyRenderer) Report(w io.Writer, r *Report) error {
	p.tally.Add(r)
	var b strings.Builder
	for _, f := range r.Failures {
		kind := f.Kind.String()
		if f.RuleID != "" {
			kind += "(" + f.RuleID + ")"
		}
		fmt.Fprintf(&b, "%s: %s %s: %s\n", p.path.Sprint(r.Path), p.err.Sprint("[error]"), kind, diag.SanitizeMessage(f.Message))
	}
	for _, v := range r.Violations {
		sev := p.warn
		if v.Severity == diag.SevError {
			sev = p.err
		}
		fmt.Fprintf(&b, "%s %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d:", r.Path, v.Line, v.Column),
			sev.Sprintf("[%s]", v.Severity),
			p.rule.Sprint(v.RuleID),
			diag.SanitizeMessage(v.Message))
		p.writeSnippet(&b, r, v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (p *prettyRenderer) writeSnippet(b *strings.Builder, r *Report, v diag.Violation) {
	f := r.Source()
	if f == nil {
		return
	}
	line := f.GetLine(v.Line)
	col := int(v.Column) - 1
	if col < 0 || col > len(line) {
		return
	}
	num := fmt.Sprintf("%4d", v.Line)
	gutter := strings.Repeat(" ", len(num))
	fmt.Fprintf(b, "%s %s %s\n", p.dim.Sprint(num), p.dim.Sprint("|"), line)

	// таб оставляем табом, иначе подчёркивание съедет
	var pad strings.Builder
	for _, ch := range line[:col] {
		if ch == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(ch)))
	}
	end := col + int(v.Span.Len())
	if end > len(line) {
		end = len(line)
	}
	width := max(runewidth.StringWidth(line[col:end]), 1)
	mark := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(b, "%s %s %s%s\n", gutter, p.dim.Sprint("|"), pad.String(), p.caret.Sprint(mark))
}

func (p *prettyRenderer) End(w io.Writer) error {
	t := p.tally
	_, err := fmt.Fprintf(w, "%s, %s, %s in %s\n",
		plural(t.Errors, "error"), plural(t.Warnings, "warning"), plural(t.Failures, "failure"), plural(t.Files, "file"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
