package report

// Exit statuses.
const (
	ExitClean  = 0 // no error-severity violations
	ExitErrors = 1 // at least one error-severity violation
	ExitFatal  = 2 // unreadable file, scan error, engine error or no input
)

// Tally accumulates the run status over emitted reports.
type Tally struct {
	Files    int
	Errors   int
	Warnings int
	Failures int
	fatal    bool
}

// Add counts one report.
func (t *Tally) Add(r *Report) {
	t.Files++
	t.Errors += r.Summary.Errors
	t.Warnings += r.Summary.Warnings
	t.Failures += r.Summary.Failures
	if r.Fatal() {
		t.fatal = true
	}
}

// MarkFatal records a run-level fatal condition (empty input, cancellation).
func (t *Tally) MarkFatal() {
	t.fatal = true
}

// ExitCode maps the tally to 0, 1 or 2.
func (t *Tally) ExitCode() int {
	switch {
	case t.fatal:
		return ExitFatal
	case t.Errors > 0:
		return ExitErrors
	}
	return ExitClean
}
