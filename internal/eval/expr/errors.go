package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every error produced while compiling a rule.
	ErrSyntax = errors.New("syntax error")

	// ErrLookup is matched by errors raised when an input value cannot be
	// resolved at evaluation time.
	ErrLookup = errors.New("lookup error")
)

// SyntaxError describes a malformed rule.
type SyntaxError struct {
	// Pos is the byte offset in the rule source, or -1 at end of input.
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("syntax error at end of rule: %s", e.Msg)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// IndexError reports a variable index that is not covered by the values
// supplied to Eval.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (%d values)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrLookup }
