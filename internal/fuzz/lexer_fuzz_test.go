package fuzztests

import (
	"errors"
	"testing"

	"stylint/internal/config"
	"stylint/internal/engine"
	"stylint/internal/lexer"
	"stylint/internal/rules"
	"stylint/internal/source"
	"stylint/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.R", clampInput(input)))

		toks, err := lexer.Scan(file, lexer.Options{})
		if err != nil {
			var scanErrs lexer.ScanErrors
			if !errors.As(err, &scanErrs) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		}
		if err := testkit.CheckTokenInvariants(file, toks); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzRulesNeverFail(f *testing.F) {
	addCorpusSeeds(f)
	active, err := config.Default().BuildRules()
	if err != nil {
		f.Fatal(err)
	}
	eng := engine.New(active)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.R", clampInput(input)))
		toks, err := lexer.Scan(file, lexer.Options{})
		if err != nil {
			return // с ошибками сканирования правила не запускаются
		}
		res := eng.Run(rules.NewInput(file, toks))
		for _, e := range res.Errors {
			t.Errorf("rule failed: %v\n%s", e, e.Stack)
		}
		if err := testkit.CheckViolationSpans(toks, res.Violations); err != nil {
			t.Fatal(err)
		}
	})
}
