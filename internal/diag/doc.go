// Package diag defines the violation model shared by the lexer, the rules and
// the reporter.
//
// Violation is the central record: a rule id, a severity (error or warning), a
// short message and the span of the token it is anchored on, plus the 1-based
// line and byte column of that token. Failure records file-level problems that
// are not findings (unreadable file, broken rule).
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// supports capping and sorting. Package diag
// does no IO and no formatting beyond the golden/short line format used by
// tests and the short CLI output; rendering lives in internal/report.
//
// Keep the data model deterministic: two runs over the same input must produce
// identical violations in identical order, reports are cached and compared
// byte-for-byte.
package diag
