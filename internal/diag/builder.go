package diag

import "stylint/internal/token"

// At builds a violation anchored on tok. RuleID and Severity are stamped by the
// engine, rules only pick the token and the message.
func At(tok token.Token, msg string) Violation {
	return Violation{
		Message: msg,
		Span:    tok.Span,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// New builds a fully tagged violation.
func New(rule string, sev Severity, tok token.Token, msg string) Violation {
	v := At(tok, msg)
	v.RuleID = rule
	v.Severity = sev
	return v
}

// WithSeverity returns a copy with the severity replaced.
func (v Violation) WithSeverity(sev Severity) Violation {
	v.Severity = sev
	return v
}
