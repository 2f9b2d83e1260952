package testkit

import (
	"strings"
	"testing"

	"stylint/internal/diag"
	"stylint/internal/lexer"
	"stylint/internal/source"
	"stylint/internal/token"
)

func scan(t *testing.T, src string) (*source.File, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.R", []byte(src)))
	toks, _ := lexer.Scan(f, lexer.Options{})
	return f, toks
}

func TestInvariantsHoldForLexerOutput(t *testing.T) {
	for _, src := range []string{
		"",
		"x <- 1\n",
		"if(x==1){print(\"x is equal to 1\")}",
		"a[[1]][b[2]] %in% `odd name`\n# comment \t\n",
		"\"unterminated\n",
		"данные <- 1 /* block\ncomment */\n",
	} {
		f, toks := scan(t, src)
		if err := CheckTokenInvariants(f, toks); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestInvariantsCatchBrokenStreams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]token.Token) []token.Token
		want   string
	}{
		{"missing EOF", func(ts []token.Token) []token.Token { return ts[:len(ts)-1] }, "EOF"},
		{"gap", func(ts []token.Token) []token.Token { return append(ts[:1:1], ts[2:]...) }, "starts at"},
		{"wrong text", func(ts []token.Token) []token.Token { ts[0].Text = "y"; return ts }, "source slice"},
		{"wrong column", func(ts []token.Token) []token.Token { ts[2].Column = 9; return ts }, "line index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, toks := scan(t, "x <- 1\n")
			err := CheckTokenInvariants(f, tt.mutate(toks))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestCheckViolationSpans(t *testing.T) {
	_, toks := scan(t, "myVar <- 1\n")
	good := diag.At(toks[0], "bad name")
	if err := CheckViolationSpans(toks, []diag.Violation{good}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := good
	bad.Span.End++
	if err := CheckViolationSpans(toks, []diag.Violation{bad}); err == nil {
		t.Fatal("synthetic span must be rejected")
	}
}
