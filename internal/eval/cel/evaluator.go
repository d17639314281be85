package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Filter is a compiled CEL predicate over a data row.
type Filter struct {
	expression string
	program    cel.Program
}

// NewFilter compiles expression. An empty expression matches every row.
func NewFilter(expression string) (*Filter, error) {
	if expression == "" {
		return &Filter{}, nil
	}

	env, err := newEnv()
	if err != nil {
		return nil, err
	}

	// Parse and type-check the expression
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	// Generate the program
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// newEnv creates the CEL environment exposing the row variable
func newEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("row", decls.NewMapType(decls.String, decls.Double)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// Match evaluates the filter against row
func (f *Filter) Match(ctx context.Context, row map[string]float64) (bool, error) {
	if f.program == nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	out, _, err := f.program.Eval(map[string]interface{}{
		"row": row,
	})
	if err != nil {
		return false, fmt.Errorf("evaluation failed: %w", err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not return a boolean, got %T", f.expression, out.Value())
	}

	return matched, nil
}

// Expression returns the source of the filter
func (f *Filter) Expression() string {
	return f.expression
}

// Enabled reports whether the filter can reject rows
func (f *Filter) Enabled() bool {
	return f.program != nil
}
