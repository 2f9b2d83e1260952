package rules

import (
	"stylint/internal/diag"
)

// Line length counting modes.
const (
	LengthChars   = "chars"
	LengthDisplay = "display"
)

// Options carries every rule knob. Zero value is not useful, start from
// DefaultOptions.
type Options struct {
	MaxLineLength     int
	LineLengthMode    string
	AllowedCharset    string
	SpacedOperators   []string
	NoSpaceOperators  []string
	BraceSameLine     bool
	IgnoreIdentifiers []string

	// per-rule overrides, keyed by rule id
	Disabled map[string]bool
	Severity map[string]diag.Severity
}

// DefaultOptions returns the lab guide's defaults.
func DefaultOptions() Options {
	return Options{
		MaxLineLength:  80,
		LineLengthMode: LengthChars,
		AllowedCharset: "[a-z0-9_]",
		SpacedOperators: []string{
			"<-", "<<-", "->", "->>", "=", "==", "!=", "<", ">", "<=", ">=",
			"+", "-", "*", "/", "&", "&&", "|", "||", "|>", "~",
		},
		NoSpaceOperators: []string{"^", ":", "::"},
		BraceSameLine:    true,
	}
}
