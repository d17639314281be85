package expr

import (
	"fmt"
	"math"
)

// Eval evaluates n against values, where {i} reads values[i].
// Every operand is evaluated, including both sides of && and ||, so an
// IndexError anywhere in the tree fails the evaluation. && and || yield one of
// their operands: && the right one when the left is truthy, || the left one
// when it is truthy.
func Eval(n Node, values []float64) (Value, error) {
	switch n := n.(type) {
	case *NumberLit:
		return Number(n.Value), nil

	case *VarRef:
		if n.Index < 0 || n.Index >= len(values) {
			return Value{}, &IndexError{Index: n.Index, Len: len(values)}
		}
		return Number(values[n.Index]), nil

	case *UnaryExpr:
		x, err := Eval(n.X, values)
		if err != nil {
			return Value{}, err
		}
		if n.Op == Not {
			return Bool(!x.Truthy()), nil
		}
		return Number(-x.Float()), nil

	case *BinaryExpr:
		l, r, err := evalPair(n.Left, n.Right, values)
		if err != nil {
			return Value{}, err
		}
		return Number(arith(n.Op, l.Float(), r.Float())), nil

	case *CompareExpr:
		l, r, err := evalPair(n.Left, n.Right, values)
		if err != nil {
			return Value{}, err
		}
		return Bool(compare(n.Op, l.Float(), r.Float())), nil

	case *AndExpr:
		l, r, err := evalPair(n.Left, n.Right, values)
		if err != nil {
			return Value{}, err
		}
		if l.Truthy() {
			return r, nil
		}
		return l, nil

	case *OrExpr:
		l, r, err := evalPair(n.Left, n.Right, values)
		if err != nil {
			return Value{}, err
		}
		if l.Truthy() {
			return l, nil
		}
		return r, nil
	}

	panic(fmt.Sprintf("expr: unexpected node type %T", n))
}

// Truthy evaluates n and coerces the result to a boolean.
func Truthy(n Node, values []float64) (bool, error) {
	v, err := Eval(n, values)
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

func evalPair(left, right Node, values []float64) (Value, Value, error) {
	l, err := Eval(left, values)
	if err != nil {
		return Value{}, Value{}, err
	}
	r, err := Eval(right, values)
	if err != nil {
		return Value{}, Value{}, err
	}
	return l, r, nil
}

func arith(op ArithOp, l, r float64) float64 {
	switch op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		return l / r
	case Mod:
		return floorMod(l, r)
	}
	panic(fmt.Sprintf("expr: unexpected arithmetic operator %q", op))
}

// floorMod returns l mod r with the sign of r. A zero divisor yields NaN.
func floorMod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

func compare(op CmpOp, l, r float64) bool {
	switch op {
	case Eq:
		return l == r
	case Ne:
		return l != r
	case Gt:
		return l > r
	case Lt:
		return l < r
	case Ge:
		return l >= r
	case Le:
		return l <= r
	}
	panic(fmt.Sprintf("expr: unexpected comparison %v", op))
}
