package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, src string) Node {
	t.Helper()
	root, err := Compile(src)
	require.NoError(t, err, src)
	return root
}

func TestEvalTruthy(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		values []float64
		want   bool
	}{
		{"precedence", "{0} + {1} * {2} == 14", []float64{2, 3, 4}, true},
		{"parentheses", "({0} + {1}) * {2} == 20", []float64{2, 3, 4}, true},
		{"chained comparison is pairwise", "{0} > {1} > {2}", []float64{5, 3, 1}, false},
		{"chained comparison compares bool as number", "{0} > {1} > {2}", []float64{5, 3, 0}, true},
		{"double negation of zero", "!!{0}", []float64{0}, false},
		{"double negation of non-zero", "!!{0}", []float64{5}, true},
		{"not", "!{0}", []float64{0}, true},
		{"negative is truthy", "-{0}", []float64{3}, true},
		{"zero is falsy", "{0} - {0}", []float64{3}, false},
		{"and", "{0} > 1 && {1} < 1", []float64{2, 0}, true},
		{"and false", "{0} > 1 && {1} < 1", []float64{2, 2}, false},
		{"or", "{0} > 1 || {1} < 1", []float64{0, 0}, true},
		{"or false", "{0} > 1 || {1} < 1", []float64{0, 2}, false},
		{"not equal", "{0} != {1}", []float64{1, 2}, true},
		{"less or equal", "{0} <= {1}", []float64{2, 2}, true},
		{"greater or equal", "{0} >= {1}", []float64{1, 2}, false},
		{"sum threshold", "{2} + {3} > 100", []float64{0, 0, 60, 50}, true},
		{"mixed", "({0} + {1}) * {2} / {3} - {4} < 50", []float64{10, 20, 3, 2, 1}, true},
		{"literal constant", "1", nil, true},
		{"nan is truthy", "0 / 0", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Truthy(mustCompile(t, tt.src), tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalValues(t *testing.T) {
	tests := []struct {
		src    string
		values []float64
		want   Value
	}{
		{"{0} + {1} * {2}", []float64{2, 3, 4}, Number(14)},
		{"({0} + {1}) * {2}", []float64{2, 3, 4}, Number(20)},
		{"-{0}", []float64{2}, Number(-2)},
		{"--{0}", []float64{2}, Number(2)},
		{"7 % 3", nil, Number(1)},
		{"-7 % 3", nil, Number(2)},
		{"7 % -3", nil, Number(-2)},
		{"7.5 % 2", nil, Number(1.5)},
		{"1 / 4", nil, Number(0.25)},
		{"({0} > 1) + ({1} > 1)", []float64{2, 2}, Number(2)},
		{"-({0} > 1)", []float64{2}, Number(-1)},
		{"{0} && {1}", []float64{2, 3}, Number(3)},
		{"{0} && {1}", []float64{0, 3}, Number(0)},
		{"{0} || {1}", []float64{0, 0}, Number(0)},
		{"{0} || {1}", []float64{2, 5}, Number(2)},
		{"{0} || {1}", []float64{0, 5}, Number(5)},
		{"({0} > 1) && {1}", []float64{2, 7}, Number(7)},
		{"({0} > 1) && {1}", []float64{0, 7}, Bool(false)},
		{"{0} || ({1} > 1)", []float64{0, 7}, Bool(true)},
		{"({0} && {1}) > 3", []float64{2, 5}, Bool(true)},
		{"({0} || {1}) == 2", []float64{2, 5}, Bool(true)},
		{"({0} && {1}) + 1", []float64{2, 5}, Number(6)},
		{"!{0}", []float64{1}, Bool(false)},
		{"{0} < 1", []float64{0}, Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(mustCompile(t, tt.src), tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	v, err := Eval(mustCompile(t, "1 / 0"), nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.Float(), 1))

	v, err = Eval(mustCompile(t, "-1 / 0"), nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.Float(), -1))

	v, err = Eval(mustCompile(t, "0 / 0"), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.Float()))

	v, err = Eval(mustCompile(t, "{0} % 0"), []float64{5})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.Float()))

	// NaN is unequal to everything, itself included.
	ok, err := Truthy(mustCompile(t, "0 / 0 == 0 / 0"), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Truthy(mustCompile(t, "1 / 0 > 1000000"), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvalIndexOutOfRange(t *testing.T) {
	_, err := Eval(mustCompile(t, "{10} > 1"), []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookup))

	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 10, ie.Index)
	assert.Equal(t, 3, ie.Len)
	assert.EqualError(t, err, "index 10 out of range (3 values)")
}

func TestEvalNoShortCircuit(t *testing.T) {
	tests := []string{
		"{0} > 0 || {1}",
		"{0} < 0 && {1}",
		"!({0} > 0 || {5} > 0)",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Eval(mustCompile(t, src), []float64{1})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLookup))
		})
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	const src = "({0} + {1}) * {2} / ({3} - 1) >= {4} % 3 || !{0}"
	first := mustCompile(t, src)
	second := mustCompile(t, src)
	assert.Equal(t, first, second)

	inputs := [][]float64{
		{1, 2, 3, 4, 5},
		{0, 0, 0, 1, 0},
		{-3, 7.5, 2, 0.5, -8},
		{100, -100, 0.25, 2, 9},
	}
	for _, values := range inputs {
		a, errA := Eval(first, values)
		b, errB := Eval(second, values)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a.String(), b.String())
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "-1", Number(-1).String())
	assert.True(t, Bool(true).IsBool())
	assert.False(t, Number(1).IsBool())
	assert.Equal(t, float64(1), Bool(true).Float())
}
