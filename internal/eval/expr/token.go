package expr

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	VAR Kind = iota // {N}
	NUM             // 1, 2.5, .5
	AND             // &&
	OR              // ||
	CMP             // == != > < >= <=
	OP              // ( ) + - * / % !
)

var kindNames = [...]string{
	VAR: "VAR",
	NUM: "NUM",
	AND: "AND",
	OR:  "OR",
	CMP: "CMP",
	OP:  "OP",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical unit of a rule.
type Token struct {
	Kind Kind

	// Index is the variable index of a VAR token.
	Index int

	// Num is the value of a NUM token.
	Num float64

	// Op is the operator text of AND, OR, CMP and OP tokens.
	Op string

	// Pos is the byte offset of the token in the rule source.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case VAR:
		return fmt.Sprintf("{%d}", t.Index)
	case NUM:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	default:
		return t.Op
	}
}

// is reports whether t is an operator token of kind k spelling op.
func (t Token) is(k Kind, op string) bool {
	return t.Kind == k && t.Op == op
}
