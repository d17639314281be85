package expr

import "strconv"

// Value is the result of evaluating a node: a number or a boolean.
// The zero Value is the number 0.
type Value struct {
	num    float64
	isBool bool
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{num: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	if b {
		return Value{num: 1, isBool: true}
	}
	return Value{isBool: true}
}

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.isBool }

// Float returns v in numeric context; booleans are 1 or 0.
func (v Value) Float() float64 { return v.num }

// Truthy returns v in boolean context: any non-zero number, including NaN,
// is true.
func (v Value) Truthy() bool { return v.num != 0 }

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.Truthy())
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}
