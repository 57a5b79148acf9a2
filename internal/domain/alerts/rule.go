// Package alerts finds enrollments that are about to run out of sessions.
package alerts

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"tutorcenter/internal/core/apperror"
)

// DefaultRule flags enrollments with fewer than two sessions left.
const DefaultRule = "remaining < 2"

// Facts are the variables a rule can reference.
type Facts struct {
	Remaining     int
	SessionsTotal int
	Used          int
	Notified      bool
}

// Rule is a compiled boolean CEL expression over Facts.
type Rule struct {
	expr    string
	program cel.Program
}

// CompileRule parses and type-checks expr. An empty expr means DefaultRule.
func CompileRule(expr string) (*Rule, error) {
	if expr == "" {
		expr = DefaultRule
	}

	env, err := cel.NewEnv(
		cel.Variable("remaining", cel.IntType),
		cel.Variable("sessions_total", cel.IntType),
		cel.Variable("used", cel.IntType),
		cel.Variable("notified", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("alerts: build cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, apperror.NewValidation("invalid alert rule").
			WithDetail("rule", expr).
			WithCause(issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, apperror.NewValidation("alert rule must evaluate to bool").
			WithDetail("rule", expr).
			WithDetail("type", ast.OutputType().String())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("alerts: program: %w", err)
	}
	return &Rule{expr: expr, program: prg}, nil
}

// MustCompileRule is CompileRule for rules known at build time.
func MustCompileRule(expr string) *Rule {
	r, err := CompileRule(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the source expression.
func (r *Rule) String() string {
	return r.expr
}

// Match evaluates the rule against f.
func (r *Rule) Match(f Facts) (bool, error) {
	out, _, err := r.program.Eval(map[string]any{
		"remaining":      int64(f.Remaining),
		"sessions_total": int64(f.SessionsTotal),
		"used":           int64(f.Used),
		"notified":       f.Notified,
	})
	if err != nil {
		return false, fmt.Errorf("alerts: eval %q: %w", r.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("alerts: rule %q returned %T", r.expr, out.Value())
	}
	return matched, nil
}
