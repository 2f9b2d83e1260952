// Package engine runs the active rules over one file and merges their output.
//
// Every rule runs on its own: a rule that panics, returns an error or anchors a
// violation on something that is not a token of the file is reported once as
// an EngineError and its partial output is dropped. Other rules are unaffected.
package engine

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"

	"go.uber.org/zap"

	"stylint/internal/diag"
	"stylint/internal/rules"
	"stylint/internal/source"
	"stylint/internal/token"
)

// ErrBadSpan marks a violation whose span is not a token span of the file.
var ErrBadSpan = errors.New("violation span does not match a token")

// EngineError is one failed rule on one file.
type EngineError struct {
	RuleID string
	Err    error
	Panic  any // значение из recover, если правило упало
	Stack  []byte
}

func (e *EngineError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("rule %s panicked: %v", e.RuleID, e.Panic)
	}
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Failure converts the error into a report record.
func (e *EngineError) Failure() diag.Failure {
	return diag.Failure{Kind: diag.FailEngine, RuleID: e.RuleID, Message: e.Error()}
}

// Result is the merged outcome for one file.
type Result struct {
	Violations []diag.Violation // ordered by (line, column, rule id, message)
	Errors     []*EngineError   // ordered by rule id
}

// Engine holds the immutable active rule set.
type Engine struct {
	rules  []rules.Active
	logger *zap.Logger
}

type Option func(*Engine)

// WithLogger routes rule failures to logger at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(active []rules.Active, opts ...Option) *Engine {
	e := &Engine{rules: slices.Clone(active), logger: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Rules returns the active rules in run order.
func (e *Engine) Rules() []rules.Active {
	return slices.Clone(e.rules)
}

// Run checks one file. It never fails as a whole: broken rules end up in
// Result.Errors.
func (e *Engine) Run(in *rules.Input) Result {
	spans := tokenSpans(in.Tokens)
	var res Result
	for _, a := range e.rules {
		vs, err := e.runOne(a, in, spans)
		if err != nil {
			e.logger.Debug("rule failed",
				zap.String("rule", err.RuleID),
				zap.String("path", in.File.Path),
				zap.Error(err))
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Violations = append(res.Violations, vs...)
	}
	Sort(res.Violations)
	return res
}

func (e *Engine) runOne(a rules.Active, in *rules.Input, spans map[source.Span]token.Token) (out []diag.Violation, engErr *EngineError) {
	id := a.Rule.ID()
	defer func() {
		if r := recover(); r != nil {
			out = nil
			engErr = &EngineError{RuleID: id, Panic: r, Stack: debug.Stack()}
		}
	}()

	vs, err := a.Rule.Check(in)
	if err != nil {
		return nil, &EngineError{RuleID: id, Err: err}
	}
	out = make([]diag.Violation, 0, len(vs))
	for _, v := range vs {
		tok, ok := spans[v.Span]
		if !ok || v.Span.File != in.File.ID {
			return nil, &EngineError{RuleID: id, Err: fmt.Errorf("%w: %s", ErrBadSpan, v.Span)}
		}
		// позиция всегда берётся из токена, rule id и severity — из конфигурации
		v.RuleID = id
		v.Severity = a.Severity
		v.Line, v.Column = tok.Line, tok.Column
		v.Message = diag.SanitizeMessage(v.Message)
		out = append(out, v)
	}
	return out, nil
}

// Sort orders violations by (line, column, rule id, message).
func Sort(vs []diag.Violation) {
	slices.SortStableFunc(vs, func(a, b diag.Violation) int {
		switch {
		case diag.Less(a, b):
			return -1
		case diag.Less(b, a):
			return 1
		}
		return 0
	})
}

// EOF имеет пустой span, нарушения на нём не принимаются.
func tokenSpans(toks []token.Token) map[source.Span]token.Token {
	m := make(map[source.Span]token.Token, len(toks))
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		m[t.Span] = t
	}
	return m
}
