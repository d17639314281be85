// Package expr compiles rule expressions into an AST and evaluates them
// against a positional vector of float64 values.
//
// A rule refers to its inputs by position: {0} is the first declared data
// key, {1} the second, and so on. Compilation never checks indexes against
// the declared keys; evaluation fails with an IndexError when an index is
// not covered by the supplied values.
//
// Example usage:
//
//	root, err := expr.Compile("({0} + {1}) * {2} > 10 && !{3}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := expr.Eval(root, []float64{1, 2, 4, 0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v.Truthy()) // true
//
// Supported operations, lowest to highest precedence:
//   - Boolean logic: ||, &&
//   - Comparisons: ==, !=, <, <=, >, >= (chainable, left associative)
//   - Arithmetic: +, -, then *, /, %
//   - Unary: !, - (nestable, e.g. !!-{0})
//   - Grouping: ( )
//
// Comparisons chain pairwise: {0} > {1} > {2} is evaluated as
// ({0} > {1}) > {2}, where the boolean on the left is compared as 1 or 0.
// It is not a range test. Write {0} > {1} && {1} > {2} for that.
//
// && and || always evaluate both operands and yield one of them rather than a
// boolean, so ({0} && {1}) > 3 compares {1} with 3 when {0} is non-zero. Division and modulo by zero follow
// IEEE 754 and yield Inf or NaN instead of an error.
package expr
