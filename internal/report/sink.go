package report

import (
	"io"
	"sync"
)

// Sink serializes rendering so concurrent producers never interleave output.
// Begin must be called before Emit, Close once at the end.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	r      Renderer
	policy Policy
	tally  Tally
	max    int // 0 — без ограничения
	shown  int
	err    error
}

// NewSink wraps w. maxViolations caps the number of rendered violations over
// the whole run (0 means no cap); the tally always counts everything.
func NewSink(w io.Writer, r Renderer, policy Policy, maxViolations int) *Sink {
	return &Sink{w: w, r: r, policy: policy, max: maxViolations}
}

func (s *Sink) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr(s.r.Begin(s.w))
	return s.err
}

// Emit applies the policy, counts the report and renders it.
func (s *Sink) Emit(r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r = s.policy.Apply(r)
	s.tally.Add(r)
	if s.err != nil {
		return s.err
	}
	s.setErr(s.r.Report(s.w, s.capped(r)))
	return s.err
}

// capped trims violations past the run-wide cap without touching r.
func (s *Sink) capped(r *Report) *Report {
	if s.max <= 0 {
		return r
	}
	left := s.max - s.shown
	if left >= len(r.Violations) {
		s.shown += len(r.Violations)
		return r
	}
	left = max(left, 0)
	s.shown = s.max
	c := *r
	c.Violations = r.Violations[:left:left]
	return &c
}

// MarkFatal records a run-level fatal condition.
func (s *Sink) MarkFatal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally.MarkFatal()
}

// Close finishes the output and returns the first write error.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.setErr(s.r.End(s.w))
	}
	return s.err
}

// Tally returns a snapshot of the counters.
func (s *Sink) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// ExitCode is the exit status for everything emitted so far.
func (s *Sink) ExitCode() int {
	t := s.Tally()
	return t.ExitCode()
}

func (s *Sink) setErr(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}
