package diag

import (
	"fmt"

	"stylint/internal/source"
)

// ScanRuleID is the reserved rule id for malformed-source violations.
const ScanRuleID = "scan"

// Violation is one rule finding anchored on a token of the checked file.
type Violation struct {
	RuleID   string      `json:"rule_id" msgpack:"rule_id"`
	Severity Severity    `json:"severity" msgpack:"severity"`
	Message  string      `json:"message" msgpack:"message"`
	Span     source.Span `json:"-" msgpack:"span"`
	Line     uint32      `json:"line" msgpack:"line"`
	Column   uint32      `json:"column" msgpack:"column"`
}

// FailureKind distinguishes failures from violations.
type FailureKind uint8

const (
	// FailIO — файл не прочитать.
	FailIO FailureKind = iota
	// FailEngine — правило упало, вернуло ошибку или битый span.
	FailEngine
)

func (k FailureKind) String() string {
	switch k {
	case FailIO:
		return "io"
	case FailEngine:
		return "engine"
	}
	return "unknown"
}

func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failure is a file-level problem that is not a style finding. Any failure makes
// the run fatal.
type Failure struct {
	Kind    FailureKind `json:"kind" msgpack:"kind"`
	RuleID  string      `json:"rule_id,omitempty" msgpack:"rule_id"`
	Message string      `json:"message" msgpack:"message"`
}

// Less orders violations by (line, column, rule id, message).
func Less(a, b Violation) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	return a.Message < b.Message
}

func (k *FailureKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "io":
		*k = FailIO
	case "engine":
		*k = FailEngine
	default:
		return fmt.Errorf("unknown failure kind %q", b)
	}
	return nil
}
