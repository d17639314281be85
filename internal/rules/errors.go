package rules

import (
	"fmt"

	"github.com/aescanero/dago-node-rules/internal/eval/expr"
)

// CompileError reports the rule that failed to compile.
type CompileError struct {
	Index int
	Rule  string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rule %d (%q): %v", e.Index, e.Rule, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MissingKeyError reports a declared data key absent from a data row.
// It matches expr.ErrLookup.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing data key %q", e.Key)
}

func (e *MissingKeyError) Unwrap() error { return expr.ErrLookup }

// EvalError reports the rule whose evaluation failed.
type EvalError struct {
	Index int
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("rule %d: %v", e.Index, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// ValueError reports a declared data key whose value is not a number.
type ValueError struct {
	Key   string
	Value interface{}
}

func (e *ValueError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("data key %q is null", e.Key)
	}
	return fmt.Sprintf("data key %q is not a number: %v", e.Key, e.Value)
}
