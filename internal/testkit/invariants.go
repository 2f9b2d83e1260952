// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"stylint/internal/diag"
	"stylint/internal/source"
	"stylint/internal/token"
)

// CheckTokenInvariants runs the token-stream laws on a scanned file:
// 1) the stream ends with exactly one EOF, empty and at the end of content
// 2) spans are non-empty, contiguous and start at offset 0
// 3) Text is the exact source slice and the texts concatenate to the input
// 4) Line/Column match the file's line index and strictly ascend
func CheckTokenInvariants(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) EOF
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF: %v", last.Kind)
	}
	if !last.Span.Empty() || last.Span.Start != lenContent {
		return fmt.Errorf("EOF span %v, want empty at %d", last.Span, lenContent)
	}

	var (
		off  uint32
		text strings.Builder
		prev token.Token
	)
	for i, tok := range toks[:len(toks)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("token %d: EOF before the end", i)
		}
		sp := tok.Span
		// 2) contiguous spans
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%v): empty span", i, tok.Kind)
		}
		if sp.Start != off {
			return fmt.Errorf("token %d: span %v starts at %d, want %d", i, sp, sp.Start, off)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		// 3) exact text
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d: text %q, source slice %q", i, tok.Text, got)
		}
		text.WriteString(tok.Text)
		// 4) positions
		pos := sf.Position(sp.Start)
		if pos.Line != tok.Line || pos.Col != tok.Column {
			return fmt.Errorf("token %d: position %d:%d, line index says %d:%d", i, tok.Line, tok.Column, pos.Line, pos.Col)
		}
		if i > 0 && !after(tok, prev) {
			return fmt.Errorf("token %d: position %d:%d does not follow %d:%d", i, tok.Line, tok.Column, prev.Line, prev.Column)
		}
		prev = tok
		off = sp.End
	}
	if off != lenContent {
		return fmt.Errorf("tokens cover %d of %d bytes", off, lenContent)
	}
	if text.String() != string(sf.Content) {
		return fmt.Errorf("concatenated token text differs from input")
	}
	return nil
}

func after(a, b token.Token) bool {
	if a.Line != b.Line {
		return a.Line > b.Line
	}
	return a.Column > b.Column
}

// CheckViolationSpans verifies that every violation is anchored on a span of
// toks and carries that token's position.
func CheckViolationSpans(toks []token.Token, vs []diag.Violation) error {
	bySpan := make(map[source.Span]token.Token, len(toks))
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			bySpan[tok.Span] = tok
		}
	}
	for i, v := range vs {
		tok, ok := bySpan[v.Span]
		if !ok {
			return fmt.Errorf("violation %d (%s): span %v is not a token span", i, v.RuleID, v.Span)
		}
		if tok.Line != v.Line || tok.Column != v.Column {
			return fmt.Errorf("violation %d (%s): position %d:%d, token at %d:%d", i, v.RuleID, v.Line, v.Column, tok.Line, tok.Column)
		}
	}
	return nil
}
