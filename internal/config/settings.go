package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"stylint/internal/diag"
	"stylint/internal/rules"
)

// Default file selection.
var (
	DefaultInclude = []string{".R", ".r", ".Rprofile"}
	DefaultExclude = []string{".git", "renv", "packrat"}
)

// Overrides are command-line values; they win over the config file.
type Overrides struct {
	MaxLineLength  *int
	LineLengthMode *string
	BraceSameLine  *bool
	Enable         []string
	Disable        []string
}

// Settings is the compiled, read-only configuration of one run.
type Settings struct {
	rules       rules.Options
	include     []string
	exclude     []string
	source      string
	fingerprint string
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	s, err := Compile(nil, Overrides{})
	if err != nil {
		panic(fmt.Errorf("default settings: %w", err))
	}
	return s
}

// Compile merges defaults, the file (may be nil) and overrides, validates the
// result and builds the rule set once to catch bad rule options early.
func Compile(f *File, ov Overrides) (*Settings, error) {
	opts := rules.DefaultOptions()
	s := &Settings{
		include: slices.Clone(DefaultInclude),
		exclude: slices.Clone(DefaultExclude),
	}

	if f != nil {
		s.source = f.path
		if f.MaxLineLength != nil {
			opts.MaxLineLength = *f.MaxLineLength
		}
		if f.LineLengthMode != nil {
			opts.LineLengthMode = *f.LineLengthMode
		}
		if f.AllowedIdentifierCharset != nil {
			opts.AllowedCharset = *f.AllowedIdentifierCharset
		}
		if f.NoSpaceOperators != nil {
			opts.NoSpaceOperators = slices.Clone(*f.NoSpaceOperators)
		}
		if f.SpacedOperators != nil {
			opts.SpacedOperators = slices.Clone(*f.SpacedOperators)
		}
		if f.BraceSameLine != nil {
			opts.BraceSameLine = *f.BraceSameLine
		}
		opts.IgnoreIdentifiers = slices.Clone(f.IgnoreIdentifiers)
		if f.Include != nil {
			s.include = slices.Clone(*f.Include)
		}
		if f.Exclude != nil {
			s.exclude = slices.Clone(*f.Exclude)
		}
		for _, id := range slices.Sorted(maps.Keys(f.Rules)) {
			rc := f.Rules[id]
			if !rules.Known(id) {
				return nil, fmt.Errorf("[rules.%s]: unknown rule", id)
			}
			if rc.Enabled != nil && !*rc.Enabled {
				setDisabled(&opts, id, true)
			}
			if rc.Severity != nil {
				sev, err := diag.ParseSeverity(*rc.Severity)
				if err != nil {
					return nil, fmt.Errorf("[rules.%s].severity: %w", id, err)
				}
				if opts.Severity == nil {
					opts.Severity = make(map[string]diag.Severity)
				}
				opts.Severity[id] = sev
			}
		}
	}

	if ov.MaxLineLength != nil {
		opts.MaxLineLength = *ov.MaxLineLength
	}
	if ov.LineLengthMode != nil {
		opts.LineLengthMode = *ov.LineLengthMode
	}
	if ov.BraceSameLine != nil {
		opts.BraceSameLine = *ov.BraceSameLine
	}
	for _, id := range ov.Enable {
		if !rules.Known(id) {
			return nil, fmt.Errorf("--enable %s: unknown rule", id)
		}
		setDisabled(&opts, id, false)
	}
	for _, id := range ov.Disable {
		if !rules.Known(id) {
			return nil, fmt.Errorf("--disable %s: unknown rule", id)
		}
		setDisabled(&opts, id, true)
	}

	for _, ext := range s.include {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("include %q: extensions start with '.'", ext)
		}
	}
	for _, pattern := range s.exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("exclude %q: %w", pattern, err)
		}
	}
	active, err := rules.Build(opts)
	if err != nil {
		return nil, err
	}

	s.rules = opts
	fp, err := fingerprint(s, active)
	if err != nil {
		return nil, err
	}
	s.fingerprint = fp
	return s, nil
}

func setDisabled(opts *rules.Options, id string, disabled bool) {
	if opts.Disabled == nil {
		opts.Disabled = make(map[string]bool)
	}
	if disabled {
		opts.Disabled[id] = true
	} else {
		delete(opts.Disabled, id)
	}
}

// RuleOptions returns a copy of the rule options.
func (s *Settings) RuleOptions() rules.Options {
	o := s.rules
	o.SpacedOperators = slices.Clone(o.SpacedOperators)
	o.NoSpaceOperators = slices.Clone(o.NoSpaceOperators)
	o.IgnoreIdentifiers = slices.Clone(o.IgnoreIdentifiers)
	o.Disabled = maps.Clone(o.Disabled)
	o.Severity = maps.Clone(o.Severity)
	return o
}

// BuildRules constructs the active rule set.
func (s *Settings) BuildRules() ([]rules.Active, error) {
	return rules.Build(s.RuleOptions())
}

// Include returns the accepted file extensions.
func (s *Settings) Include() []string { return slices.Clone(s.include) }

// Exclude returns the excluded path-segment globs.
func (s *Settings) Exclude() []string { return slices.Clone(s.exclude) }

// Source is the config file path, "" when defaults were used.
func (s *Settings) Source() string { return s.source }

// Fingerprint identifies everything that can change a report; it keys the
// result cache.
func (s *Settings) Fingerprint() string { return s.fingerprint }

// Included reports whether p has an accepted extension or file name.
func (s *Settings) Included(p string) bool {
	base := filepath.Base(p)
	ext := filepath.Ext(base)
	for _, want := range s.include {
		if ext == want || base == want {
			return true
		}
	}
	return false
}

// Excluded reports whether any segment of p matches an exclude glob.
func (s *Settings) Excluded(p string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		for _, pattern := range s.exclude {
			if ok, _ := path.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}

type ruleState struct {
	ID       string
	Severity string
}

// fingerprintPayload is the canonical form: equal behaviour gives equal bytes
// no matter how the values were spelled in the file.
type fingerprintPayload struct {
	MaxLineLength  int
	LineLengthMode string
	Charset        string
	Spaced         []string
	NoSpace        []string
	Ignore         []string
	BraceSameLine  bool
	Active         []ruleState
	Include        []string
	Exclude        []string
}

func fingerprint(s *Settings, active []rules.Active) (string, error) {
	o := s.rules
	p := fingerprintPayload{
		MaxLineLength:  o.MaxLineLength,
		LineLengthMode: o.LineLengthMode,
		Charset:        o.AllowedCharset,
		Spaced:         sortedSet(o.SpacedOperators),
		NoSpace:        sortedSet(o.NoSpaceOperators),
		Ignore:         sortedSet(o.IgnoreIdentifiers),
		BraceSameLine:  o.BraceSameLine,
		Include:        sortedSet(s.include),
		Exclude:        sortedSet(s.exclude),
	}
	if p.LineLengthMode == "" {
		p.LineLengthMode = rules.LengthChars
	}
	for _, a := range active {
		p.Active = append(p.Active, ruleState{ID: a.Rule.ID(), Severity: a.Severity.String()})
	}

	h := sha256.New()
	enc := msgpack.NewEncoder(h)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("settings fingerprint: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sortedSet(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}
