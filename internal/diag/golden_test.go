package diag

import (
	"testing"

	"stylint/internal/source"
)

func TestFormatGolden(t *testing.T) {
	entries := []Entry{
		{Path: "./scripts/b.R", Violation: Violation{RuleID: "spacing", Severity: SevError, Line: 1, Column: 3, Message: "missing space\nafter if"}},
		{Path: "scripts/a.R", Violation: Violation{RuleID: "trailing-whitespace", Severity: SevWarning, Line: 2, Column: 5, Message: "trailing whitespace"}},
		{Path: "scripts/a.R", Violation: Violation{RuleID: "case", Severity: SevError, Line: 2, Column: 5, Message: "bad name"}},
	}

	expected := "error case scripts/a.R:2:5 bad name\n" +
		"warning trailing-whitespace scripts/a.R:2:5 trailing whitespace\n" +
		"error spacing scripts/b.R:1:3 missing space after if"

	if got := FormatGolden(entries); got != expected {
		t.Fatalf("unexpected golden violations:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if FormatGolden(nil) != "" {
		t.Fatal("empty input must render empty")
	}
}

func TestBagSortLimit(t *testing.T) {
	sp := source.Span{File: 1, Start: 4, End: 5}
	b := NewBag(3)
	b.Add(Violation{RuleID: "spacing", Line: 2, Column: 1, Message: "b", Span: sp})
	b.Add(Violation{RuleID: "case", Line: 2, Column: 1, Message: "a", Span: sp})
	b.Add(Violation{RuleID: "case", Line: 1, Column: 9, Message: "c", Span: sp})
	if b.Add(Violation{RuleID: "case", Line: 1, Column: 1}) {
		t.Fatal("bag must refuse items over its limit")
	}
	if !b.Truncated() {
		t.Fatal("Truncated() = false after a refused Add")
	}
	b.Sort()
	items := b.Items()
	if len(items) != 3 || items[0].Message != "c" || items[1].RuleID != "case" || items[2].RuleID != "spacing" {
		t.Fatalf("unexpected items after sort: %+v", items)
	}
}

func TestSeverityText(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Severity
	}{{"error", SevError}, {"warning", SevWarning}} {
		got, err := ParseSeverity(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseSeverity(%q) = %v, %v", tc.in, got, err)
		}
		if got.String() != tc.in {
			t.Fatalf("String() = %q, want %q", got.String(), tc.in)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}
