package rules

import (
	"fmt"
	"slices"
)

// Rule ids.
const (
	IDCase               = "case"
	IDSpacing            = "spacing"
	IDBracePlacement     = "brace-placement"
	IDLineLength         = "line-length"
	IDTrailingWhitespace = "trailing-whitespace"
)

// Factory builds a configured rule.
type Factory func(opts Options) (Rule, error)

// Info describes a registered rule.
type Info struct {
	ID          string
	Description string
	New         Factory
}

var registry = []Info{
	{IDCase, caseDescription, func(o Options) (Rule, error) { return NewCaseRule(o) }},
	{IDSpacing, spacingDescription, func(o Options) (Rule, error) { return NewSpacingRule(o), nil }},
	{IDBracePlacement, braceDescription, func(o Options) (Rule, error) { return NewBracePlacementRule(o), nil }},
	{IDLineLength, lineLengthDescription, func(o Options) (Rule, error) { return NewLineLengthRule(o) }},
	{IDTrailingWhitespace, trailingDescription, func(o Options) (Rule, error) { return NewTrailingWhitespaceRule(), nil }},
}

// All returns every registered rule, sorted by id.
func All() []Info {
	out := slices.Clone(registry)
	slices.SortFunc(out, func(a, b Info) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Lookup finds a registered rule by id.
func Lookup(id string) (Info, bool) {
	for _, info := range registry {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Known reports whether id names a registered rule.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Build constructs the active rule set once, in id order. Disabled rules are
// left out; severities fall back to each rule's default.
func Build(opts Options) ([]Active, error) {
	for id := range opts.Disabled {
		if !Known(id) {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
	}
	for id := range opts.Severity {
		if !Known(id) {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
	}
	var out []Active
	for _, info := range All() {
		if opts.Disabled[info.ID] {
			continue
		}
		r, err := info.New(opts)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", info.ID, err)
		}
		sev := r.DefaultSeverity()
		if s, ok := opts.Severity[info.ID]; ok {
			sev = s
		}
		out = append(out, Active{Rule: r, Severity: sev})
	}
	return out, nil
}
