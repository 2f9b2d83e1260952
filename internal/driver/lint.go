package driver

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/engine"
	"stylint/internal/lexer"
	"stylint/internal/report"
	"stylint/internal/rules"
	"stylint/internal/source"
	"stylint/internal/version"
)

// Linter runs the per-file pipeline with one immutable rule set. It is safe
// for concurrent use.
type Linter struct {
	settings *config.Settings
	engine   *engine.Engine
	cache    Cache
	logger   *zap.Logger
}

// LinterOption customizes a Linter.
type LinterOption func(*Linter)

// WithCache enables the result cache.
func WithCache(c Cache) LinterOption {
	return func(l *Linter) { l.cache = c }
}

// WithLogger sets the logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) LinterOption {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLinter builds the active rule set from s once.
func NewLinter(s *config.Settings, opts ...LinterOption) (*Linter, error) {
	l := &Linter{settings: s, logger: zap.NewNop()}
	for _, o := range opts {
		o(l)
	}
	active, err := s.BuildRules()
	if err != nil {
		return nil, err
	}
	l.engine = engine.New(active, engine.WithLogger(l.logger))
	return l, nil
}

// Settings returns the settings the linter was built from.
func (l *Linter) Settings() *config.Settings { return l.settings }

// Rules returns the active rules.
func (l *Linter) Rules() []rules.Active { return l.engine.Rules() }

// LintFile lints an already loaded file; display is the path shown in output.
func (l *Linter) LintFile(display string, file *source.File) *report.Report {
	rep, _ := l.lint(display, file)
	return rep
}

// lint also reports whether the result came from the cache.
func (l *Linter) lint(display string, file *source.File) (*report.Report, bool) {
	var key Key
	if l.cache != nil {
		key = NewKey(file.Hash, l.settings.Fingerprint(), version.Version)
		if e, ok := l.cache.Get(key); ok {
			l.logger.Debug("cache hit", zap.String("path", display))
			return report.New(display, rebase(e.Violations, file.ID), nil).WithSource(file), true
		}
	}

	start := time.Now()
	vs, failures := l.check(file)
	l.logger.Debug("linted",
		zap.String("path", display),
		zap.Int("violations", len(vs)),
		zap.Int("failures", len(failures)),
		zap.Duration("elapsed", time.Since(start)))

	// упавшие правила не кэшируем: паника может быть не детерминирована
	if l.cache != nil && len(failures) == 0 {
		l.cache.Put(key, &Entry{Violations: vs})
	}
	return report.New(display, vs, failures).WithSource(file), false
}

// check tokenizes and, if the scan was clean, runs the rules. A malformed
// file gets only its scan violations.
func (l *Linter) check(file *source.File) ([]diag.Violation, []diag.Failure) {
	toks, err := lexer.Scan(file, lexer.Options{})
	if err != nil {
		var scanErrs lexer.ScanErrors
		if !errors.As(err, &scanErrs) {
			return nil, []diag.Failure{{Kind: diag.FailEngine, Message: err.Error()}}
		}
		vs := make([]diag.Violation, 0, len(scanErrs))
		for _, se := range scanErrs {
			vs = append(vs, lexer.ScanViolation(se))
		}
		engine.Sort(vs)
		return vs, nil
	}

	res := l.engine.Run(rules.NewInput(file, toks))
	var failures []diag.Failure
	for _, e := range res.Errors {
		failures = append(failures, e.Failure())
	}
	return res.Violations, failures
}

func ioFailure(path string, err error) *report.Report {
	return report.New(path, nil, []diag.Failure{{Kind: diag.FailIO, Message: err.Error()}})
}

// rebase rewrites cached spans onto the current FileID.
func rebase(vs []diag.Violation, id source.FileID) []diag.Violation {
	out := make([]diag.Violation, len(vs))
	for i, v := range vs {
		v.Span.File = id
		out[i] = v
	}
	return out
}
