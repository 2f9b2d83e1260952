package diag

import "fmt"

// Severity defines the importance of a violation.
type Severity uint8

const (
	// SevWarning is reported but does not fail the run.
	SevWarning Severity = iota
	// SevError fails the run with exit status 1.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity принимает "error" и "warning" (как в конфиге).
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SevError, nil
	case "warning":
		return SevWarning, nil
	}
	return 0, fmt.Errorf("unknown severity %q (want error or warning)", s)
}

// MarshalText keeps config and JSON output on the lowercase labels.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
