package expr

import (
	"strconv"
)

// Node is an AST node. The set of implementations is closed: NumberLit,
// VarRef, UnaryExpr, BinaryExpr, CompareExpr, AndExpr and OrExpr.
type Node interface {
	// String renders the node fully parenthesized.
	String() string
	node()
}

// UnaryOp is a prefix operator.
type UnaryOp byte

const (
	Not UnaryOp = '!'
	Neg UnaryOp = '-'
)

func (op UnaryOp) String() string { return string(op) }

// ArithOp is a binary arithmetic operator.
type ArithOp byte

const (
	Add ArithOp = '+'
	Sub ArithOp = '-'
	Mul ArithOp = '*'
	Div ArithOp = '/'
	Mod ArithOp = '%'
)

func (op ArithOp) String() string { return string(op) }

// CmpOp is a comparison operator.
type CmpOp int

const (
	Eq CmpOp = iota
	Ne
	Gt
	Lt
	Ge
	Le
)

var cmpOps = map[string]CmpOp{
	"==": Eq,
	"!=": Ne,
	">":  Gt,
	"<":  Lt,
	">=": Ge,
	"<=": Le,
}

var cmpNames = [...]string{Eq: "==", Ne: "!=", Gt: ">", Lt: "<", Ge: ">=", Le: "<="}

func (op CmpOp) String() string {
	if op >= 0 && int(op) < len(cmpNames) {
		return cmpNames[op]
	}
	return "CmpOp(" + strconv.Itoa(int(op)) + ")"
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// VarRef is a positional reference {Index} into the evaluation values.
type VarRef struct {
	Index int
}

// UnaryExpr applies ! or - to its operand.
type UnaryExpr struct {
	Op UnaryOp
	X  Node
}

// BinaryExpr is an arithmetic operation.
type BinaryExpr struct {
	Op          ArithOp
	Left, Right Node
}

// CompareExpr is a comparison. Chained comparisons nest on the left.
type CompareExpr struct {
	Op          CmpOp
	Left, Right Node
}

// AndExpr is a logical conjunction. Both sides are always evaluated.
type AndExpr struct {
	Left, Right Node
}

// OrExpr is a logical disjunction. Both sides are always evaluated.
type OrExpr struct {
	Left, Right Node
}

func (*NumberLit) node()   {}
func (*VarRef) node()      {}
func (*UnaryExpr) node()   {}
func (*BinaryExpr) node()  {}
func (*CompareExpr) node() {}
func (*AndExpr) node()     {}
func (*OrExpr) node()      {}

func (n *NumberLit) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *VarRef) String() string    { return "{" + strconv.Itoa(n.Index) + "}" }
func (n *UnaryExpr) String() string { return n.Op.String() + n.X.String() }

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *CompareExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *AndExpr) String() string {
	return "(" + n.Left.String() + " && " + n.Right.String() + ")"
}

func (n *OrExpr) String() string {
	return "(" + n.Left.String() + " || " + n.Right.String() + ")"
}

// MaxIndex returns the largest variable index referenced by n, or -1 when n
// references no variables.
func MaxIndex(n Node) int {
	switch n := n.(type) {
	case *VarRef:
		return n.Index
	case *UnaryExpr:
		return MaxIndex(n.X)
	case *BinaryExpr:
		return max(MaxIndex(n.Left), MaxIndex(n.Right))
	case *CompareExpr:
		return max(MaxIndex(n.Left), MaxIndex(n.Right))
	case *AndExpr:
		return max(MaxIndex(n.Left), MaxIndex(n.Right))
	case *OrExpr:
		return max(MaxIndex(n.Left), MaxIndex(n.Right))
	}
	return -1
}
