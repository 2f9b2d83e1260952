package engine_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stylint/internal/diag"
	"stylint/internal/engine"
	"stylint/internal/lexer"
	"stylint/internal/rules"
	"stylint/internal/source"
	"stylint/internal/token"
)

// stubRule lets a test decide what Check does.
type stubRule struct {
	id    string
	check func(in *rules.Input) ([]diag.Violation, error)
}

func (s stubRule) ID() string { return s.id }
func (s stubRule) Description() string { return "test rule " + s.id }
func (s stubRule) DefaultSeverity() diag.Severity { return diag.SevError }
func (s stubRule) Check(in *rules.Input) ([]diag.Violation, error) { return s.check(in) }

func input(t *testing.T, src string) *rules.Input {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("e.R", []byte(src)))
	toks, err := lexer.Scan(f, lexer.Options{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return rules.NewInput(f, toks)
}

// flagAll reports every identifier.
func flagAll(in *rules.Input) ([]diag.Violation, error) {
	var out []diag.Violation
	for _, tok := range in.Tokens {
		if tok.Kind == token.Identifier {
			out = append(out, diag.At(tok, "ident "+tok.Text))
		}
	}
	return out, nil
}

func TestPanickingRuleIsIsolated(t *testing.T) {
	in := input(t, "a <- b\n")
	good := rules.Active{Rule: stubRule{id: "good", check: flagAll}, Severity: diag.SevWarning}
	bomb := rules.Active{Rule: stubRule{id: "bomb", check: func(in *rules.Input) ([]diag.Violation, error) {
		panic("boom")
	}}, Severity: diag.SevError}

	alone := engine.New([]rules.Active{good}).Run(in)
	mixed := engine.New([]rules.Active{bomb, good}).Run(in)

	if diff := cmp.Diff(alone.Violations, mixed.Violations); diff != "" {
		t.Fatalf("panicking rule changed other output (-alone +mixed):\n%s", diff)
	}
	if len(mixed.Errors) != 1 || mixed.Errors[0].RuleID != "bomb" || mixed.Errors[0].Panic != "boom" {
		t.Fatalf("expected exactly one EngineError for bomb, got %+v", mixed.Errors)
	}
	f := mixed.Errors[0].Failure()
	if f.Kind != diag.FailEngine || f.RuleID != "bomb" {
		t.Fatalf("unexpected failure %+v", f)
	}
}

func TestErrorRuleDropsPartialOutput(t *testing.T) {
	in := input(t, "a <- b\n")
	failing := rules.Active{Rule: stubRule{id: "half", check: func(in *rules.Input) ([]diag.Violation, error) {
		vs, _ := flagAll(in)
		return vs, errors.New("gave up")
	}}}
	res := engine.New([]rules.Active{failing}).Run(in)
	if len(res.Violations) != 0 {
		t.Fatalf("partial output kept: %+v", res.Violations)
	}
	if len(res.Errors) != 1 || res.Errors[0].Error() != "rule half: gave up" {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestSyntheticSpanIsEngineError(t *testing.T) {
	in := input(t, "abc\n")
	bad := rules.Active{Rule: stubRule{id: "bad", check: func(in *rules.Input) ([]diag.Violation, error) {
		return []diag.Violation{{Message: "x", Span: source.Span{File: in.File.ID, Start: 1, End: 2}}}, nil
	}}}
	res := engine.New([]rules.Active{bad}).Run(in)
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], engine.ErrBadSpan) {
		t.Fatalf("expected ErrBadSpan, got %v", res.Errors)
	}
}

func TestOrderingAndStamping(t *testing.T) {
	in := input(t, "b <- a\nc\n")
	mk := func(id string, sev diag.Severity) rules.Active {
		return rules.Active{Rule: stubRule{id: id, check: flagAll}, Severity: sev}
	}
	res := engine.New([]rules.Active{mk("zeta", diag.SevWarning), mk("alpha", diag.SevError)}).Run(in)
	type row struct {
		Line, Col uint32
		Rule      string
		Sev       diag.Severity
	}
	var got []row
	for _, v := range res.Violations {
		got = append(got, row{v.Line, v.Column, v.RuleID, v.Severity})
	}
	want := []row{
		{1, 1, "alpha", diag.SevError},
		{1, 1, "zeta", diag.SevWarning},
		{1, 6, "alpha", diag.SevError},
		{1, 6, "zeta", diag.SevWarning},
		{2, 1, "alpha", diag.SevError},
		{2, 1, "zeta", diag.SevWarning},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestRealRulesDeterministic(t *testing.T) {
	active, err := rules.Build(rules.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e := engine.New(active)
	in := input(t, "if(x==1){print(\"x is equal to 1\")}\nmyVar<-1  \n")
	first := e.Run(in)
	second := e.Run(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("runs differ:\n%s", diff)
	}
	if len(first.Errors) != 0 {
		t.Fatalf("built-in rules failed: %v", first.Errors)
	}
	for i := 1; i < len(first.Violations); i++ {
		if diag.Less(first.Violations[i], first.Violations[i-1]) {
			t.Fatalf("violations out of order at %d", i)
		}
	}
}
