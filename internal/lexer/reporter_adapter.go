package lexer

import "stylint/internal/diag"

// ReporterAdapter адаптирует diag.Reporter для использования в лексере:
// каждая ScanError становится нарушением правила "scan".
type ReporterAdapter struct {
	Reporter diag.Reporter
}

func (r ReporterAdapter) Report(err *ScanError) {
	if r.Reporter == nil || err == nil {
		return
	}
	r.Reporter.Report(ScanViolation(err))
}

// ScanViolation converts a scan error into an error-severity violation.
func ScanViolation(err *ScanError) diag.Violation {
	return diag.Violation{
		RuleID:   diag.ScanRuleID,
		Severity: diag.SevError,
		Message:  err.Msg,
		Span:     err.Span,
		Line:     err.Line,
		Column:   err.Column,
	}
}
