package rules

import (
	"fmt"
	"regexp"
	"strings"

	"stylint/internal/diag"
	"stylint/internal/token"
)

const caseDescription = "identifiers use only the allowed characters (snake_case by default)"

// CaseRule flags identifier tokens whose name leaves the allowed charset.
type CaseRule struct {
	charset string
	allowed *regexp.Regexp
	ignore  map[string]struct{}
}

// NewCaseRule compiles the charset, a single regexp character class such as
// "[a-z0-9_]".
func NewCaseRule(opts Options) (*CaseRule, error) {
	cs := opts.AllowedCharset
	if !strings.HasPrefix(cs, "[") || !strings.HasSuffix(cs, "]") {
		return nil, fmt.Errorf("allowed_identifier_charset %q: want a character class like [a-z0-9_]", cs)
	}
	re, err := regexp.Compile("^(?:" + cs + ")+$")
	if err != nil {
		return nil, fmt.Errorf("allowed_identifier_charset %q: %w", cs, err)
	}
	ignore := make(map[string]struct{}, len(opts.IgnoreIdentifiers))
	for _, name := range opts.IgnoreIdentifiers {
		ignore[name] = struct{}{}
	}
	return &CaseRule{charset: cs, allowed: re, ignore: ignore}, nil
}

func (r *CaseRule) ID() string { return IDCase }
func (r *CaseRule) Description() string { return caseDescription }
func (r *CaseRule) DefaultSeverity() diag.Severity { return diag.SevError }

func (r *CaseRule) Check(in *Input) ([]diag.Violation, error) {
	var out []diag.Violation
	for i, tok := range in.Tokens {
		if tok.Kind != token.Identifier {
			continue
		}
		name := tok.Name()
		if r.exempt(in, i, name) || r.allowed.MatchString(name) {
			continue
		}
		msg := fmt.Sprintf("identifier %q uses characters outside %s", name, r.charset)
		if s := SnakeCase(name); s != "" && s != name && r.allowed.MatchString(s) {
			msg += fmt.Sprintf("; use %q", s)
		}
		out = append(out, diag.At(tok, msg))
	}
	return out, nil
}

func (r *CaseRule) exempt(in *Input, i int, name string) bool {
	if name == "" || isDotName(name) {
		return true
	}
	if _, ok := r.ignore[name]; ok {
		return true
	}
	// pkg::fn, pkg:::fn — чужие имена
	if p := in.prevCode(i); p >= 0 && (in.Tokens[p].Is("::") || in.Tokens[p].Is(":::")) {
		return true
	}
	if n := in.nextCode(i); n >= 0 && (in.Tokens[n].Is("::") || in.Tokens[n].Is(":::")) {
		return true
	}
	return false
}

// isDotName matches "...", "..1", "..2" and friends.
func isDotName(name string) bool {
	if strings.Trim(name, ".") == "" {
		return true
	}
	if !strings.HasPrefix(name, "..") {
		return false
	}
	for _, c := range name[2:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
