package comparison

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aerrors "github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

func v(x interface{}) value.Value { return value.Of(x) }

func TestExact_NegationIsXor(t *testing.T) {
	t.Parallel()

	shared := []int{1, 2}
	ptr := &struct{ N int }{1}
	values := []interface{}{nil, 0, 42, 3.5, true, "text", shared, ptr}

	for _, x := range values {
		assert.True(t, Exact(v(x), v(x), false, "").Pass, "Exact(%v, %v, false)", x, x)
		assert.False(t, Exact(v(x), v(x), true, "").Pass, "Exact(%v, %v, true)", x, x)
	}
}

func TestExact_Diagnostics(t *testing.T) {
	t.Parallel()

	res := Exact(v(1), v(2), false, "one is two")
	require.False(t, res.Pass)
	require.NotNil(t, res.Actual)
	require.NotNil(t, res.Expected)
	assert.Equal(t, "1", res.Actual.Text)
	assert.Equal(t, "2", res.Expected.Text)
	assert.False(t, res.Expected.Negated)
	assert.Equal(t, "one is two", res.Message)
	assert.Equal(t, StrategyExact, res.Strategy)

	ok := Exact(v(1), v(1), false, "")
	assert.Nil(t, ok.Actual, "passing results carry no diagnostics")
	assert.Nil(t, ok.Expected)
}

func TestExact_NumericAcrossTypes(t *testing.T) {
	t.Parallel()

	assert.True(t, Exact(v(1), v(1.0), false, "").Pass)
	assert.True(t, Exact(v(uint8(7)), v(int64(7)), false, "").Pass)
	assert.False(t, Exact(v(math.NaN()), v(math.NaN()), false, "").Pass)
	assert.False(t, Exact(v(true), v(1), false, "").Pass)
}

func TestExact_StringsCompareByContent(t *testing.T) {
	t.Parallel()

	built := strconv.Itoa(123) + "x"
	assert.True(t, Exact(v(built), v("123x"), false, "").Pass)
	assert.False(t, Exact(v(built), v("123x"), true, "").Pass)
	assert.False(t, Exact(v(built), v("123y"), false, "").Pass)

	a := []byte("abc")
	b := []byte("abc")
	assert.True(t, Exact(v(a), v(a), false, "").Pass)
	assert.False(t, Exact(v(a), v(b), false, "").Pass, "byte slices keep identity")
}

func TestExact_LargeIntegers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, e interface{}
		pass bool
	}{
		{"int64 above 2^53", int64(1<<53 + 1), int64(1 << 53), false},
		{"int64 equal above 2^53", int64(1<<53 + 1), int64(1<<53 + 1), true},
		{"uint64 above 2^63", uint64(1<<63 + 1), uint64(1 << 63), false},
		{"int64 vs uint64", int64(1<<62 + 1), uint64(1<<62 + 1), true},
		{"negative vs uint64", int64(-1), uint64(1<<64 - 1), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.pass, Exact(v(tt.a), v(tt.e), false, "").Pass)
		})
	}
}

func TestExact_NullHandling(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	assert.True(t, Exact(v(nil), v(nilPtr), false, "").Pass)
	assert.False(t, Exact(v(nil), v(1), false, "").Pass)
	assert.True(t, Exact(v(nil), v(1), true, "").Pass)
}

func TestBlock_EqualContentDistinctIdentity(t *testing.T) {
	t.Parallel()

	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}

	res, err := Block(v(a), v(b), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = Block(v(a), v(b), true, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)
}

func TestBlock_DifferentLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		actual   []byte
		expected []byte
	}{
		{"shorter", []byte{1, 2}, []byte{1, 2, 3}},
		{"longer", []byte{1, 2, 3, 4}, []byte{1, 2, 3}},
		{"same prefix", []byte("abc"), []byte("abcd")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Block(v(tt.actual), v(tt.expected), false, "")
			require.NoError(t, err)
			assert.False(t, res.Pass)
			assert.Contains(t, res.Reason, "sizes differ")
			require.NotNil(t, res.Actual)
			require.NotNil(t, res.Expected)
			assert.Equal(t, len(tt.actual), res.Actual.Size)
			assert.Equal(t, len(tt.expected), res.Expected.Size)

			res, err = Block(v(tt.actual), v(tt.expected), true, "")
			require.NoError(t, err)
			assert.True(t, res.Pass)
		})
	}
}

func TestBlock_DifferentContent(t *testing.T) {
	t.Parallel()

	res, err := Block(v([]byte{1, 2, 3}), v([]byte{1, 2, 4}), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	res, err = Block(v([]byte{1, 2, 3}), v([]byte{1, 2, 4}), true, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
}

func TestBlock_Strings(t *testing.T) {
	t.Parallel()

	built := string([]byte("hello"))
	res, err := Block(v("hello"), v(built), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
}

func TestBlock_NullVsNullPasses(t *testing.T) {
	t.Parallel()

	var a, b []byte
	res, err := Block(v(a), v(b), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
}

func TestBlock_NullVsNonNullIsForcedFailure(t *testing.T) {
	t.Parallel()

	var null []byte
	buf := []byte{1}

	for _, negated := range []bool{false, true} {
		res, err := Block(v(null), v(buf), negated, "")
		require.NoError(t, err)
		assert.False(t, res.Pass, "null vs buffer, negated=%v", negated)
		assert.Equal(t, "exactly one block is null", res.Reason)

		res, err = Block(v(buf), v(null), negated, "")
		require.NoError(t, err)
		assert.False(t, res.Pass, "buffer vs null, negated=%v", negated)
		require.NotNil(t, res.Expected)
		assert.Equal(t, value.KindNull, res.Expected.Kind)
	}
}

func TestBlock_SameIdentityShortCircuits(t *testing.T) {
	t.Parallel()

	buf := []byte{9, 9}
	res, err := Block(v(buf), v(buf), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, StrategyBlock, res.Strategy)
}

func TestBlock_UsageError(t *testing.T) {
	t.Parallel()

	_, err := Block(v(1), v(2), false, "")
	require.Error(t, err)
	assert.True(t, aerrors.IsUsage(err))
}

func TestReference(t *testing.T) {
	t.Parallel()

	type node struct{ N int }
	a := &node{1}
	b := &node{1}

	assert.True(t, Reference(v(a), v(a), false, "").Pass)
	assert.False(t, Reference(v(a), v(b), false, "").Pass, "same content, different identity")
	assert.True(t, Reference(v(a), v(b), true, "").Pass)

	res := Reference(v(a), v(b), false, "")
	assert.NotNil(t, res.Actual)
	assert.NotNil(t, res.Expected)
}

func TestArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		actual   []int
		expected []int
		pass     bool
		index    int
	}{
		{"equal", []int{1, 2, 3}, []int{1, 2, 3}, true, -1},
		{"length mismatch", []int{1, 2, 3}, []int{1, 2}, false, -1},
		{"element mismatch", []int{1, 2, 3}, []int{1, 2, 4}, false, 2},
		{"first element", []int{0, 2, 3}, []int{1, 2, 3}, false, 0},
		{"empty", []int{}, []int{}, true, -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Array(v(tt.actual), v(tt.expected), false, "")
			require.NoError(t, err)
			assert.Equal(t, tt.pass, res.Pass)
			assert.Equal(t, tt.index, res.Index)
			if !tt.pass {
				require.NotNil(t, res.Actual)
				require.NotNil(t, res.Expected)
				assert.Len(t, res.Actual.Values, len(tt.actual), "full actual array is reported")
				assert.Len(t, res.Expected.Values, len(tt.expected), "full expected array is reported")
			}
		})
	}
}

func TestArray_MismatchReason(t *testing.T) {
	t.Parallel()

	res, err := Array(v([]int{1, 2, 3}), v([]int{1, 2, 4}), false, "")
	require.NoError(t, err)
	assert.Equal(t, "arrays differ at index 2", res.Reason)

	res, err = Array(v([]int{1, 2, 3}), v([]int{1, 2}), false, "")
	require.NoError(t, err)
	assert.Equal(t, "lengths differ: 3 != 2", res.Reason)
}

func TestArray_Nested(t *testing.T) {
	t.Parallel()

	a := [][]string{{"a", "b"}, {"c"}}
	b := [][]string{{"a", "b"}, {"c"}}
	res, err := Array(v(a), v(b), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	c := [][]string{{"a", "b"}, {"d"}}
	res, err = Array(v(a), v(c), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, 1, res.Index)
}

func TestStrict_Dispatch(t *testing.T) {
	t.Parallel()

	type box struct{ N int }
	p1, p2 := &box{1}, &box{1}

	tests := []struct {
		name     string
		actual   interface{}
		expected interface{}
		pass     bool
	}{
		{"scalar uses exact", 5, 5, true},
		{"scalar mismatch", 5, 6, false},
		{"arrays compare structurally", []int{1, 2}, []int{1, 2}, true},
		{"distinct buffers with same content", []byte("xy"), []byte("xy"), true},
		{"strings compare by content", "abc", string([]byte("abc")), true},
		{"references compare by identity", p1, p2, false},
		{"same reference", p1, p1, true},
		{"null vs null", nil, nil, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Strict(v(tt.actual), v(tt.expected), false, "")
			require.NoError(t, err)
			assert.Equal(t, tt.pass, res.Pass)
			assert.Equal(t, StrategyStrict, res.Strategy)
		})
	}
}

func TestTruthyFalsy(t *testing.T) {
	t.Parallel()

	truthy := []interface{}{1, -1, 0.5, true, "x", []int{0}, &struct{}{}}
	falsy := []interface{}{nil, 0, 0.0, math.NaN(), false, "", []int{}, []byte{}}

	for _, x := range truthy {
		assert.True(t, Truthy(v(x), false, "").Pass, "Truthy(%#v)", x)
		assert.False(t, Falsy(v(x), false, "").Pass, "Falsy(%#v)", x)
		assert.False(t, Truthy(v(x), true, "").Pass, "not Truthy(%#v)", x)
	}
	for _, x := range falsy {
		assert.True(t, Falsy(v(x), false, "").Pass, "Falsy(%#v)", x)
		assert.False(t, Truthy(v(x), false, "").Pass, "Truthy(%#v)", x)
	}

	res := Truthy(v(0), false, "")
	assert.NotNil(t, res.Actual)
	assert.Nil(t, res.Expected, "unary strategies report only the actual side")
}

func TestRelational(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fn      func(a, e value.Value, negated bool, message string) (Result, error)
		a, e    float64
		pass    bool
		negPass bool
	}{
		{"greater holds", GreaterThan, 2, 1, true, false},
		{"greater equal values", GreaterThan, 1, 1, false, true},
		{"greater or equal on equal", GreaterThanOrEqual, 1, 1, true, false},
		{"greater or equal below", GreaterThanOrEqual, 0, 1, false, true},
		{"less holds", LessThan, 1, 2, true, false},
		{"less equal values", LessThan, 1, 1, false, true},
		{"less or equal on equal", LessThanOrEqual, 1, 1, true, false},
		{"less or equal above", LessThanOrEqual, 2, 1, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := tt.fn(v(tt.a), v(tt.e), false, "")
			require.NoError(t, err)
			assert.Equal(t, tt.pass, res.Pass)

			res, err = tt.fn(v(tt.a), v(tt.e), true, "")
			require.NoError(t, err)
			assert.Equal(t, tt.negPass, res.Pass)
		})
	}
}

func TestRelational_LargeIntegers(t *testing.T) {
	t.Parallel()

	res, err := GreaterThan(v(uint64(1<<63+1)), v(uint64(1<<63)), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, "expected 9223372036854775809 > 9223372036854775808", res.Reason)

	res, err = LessThanOrEqual(v(int64(1<<53+1)), v(int64(1<<53)), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	res, err = LessThan(v(int64(-1)), v(uint64(1<<64-1)), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = GreaterThan(v(math.NaN()), v(1), true, "")
	require.NoError(t, err)
	assert.True(t, res.Pass, "NaN is unordered")
}

func TestRelational_NegatedGreaterIsLessOrEqual(t *testing.T) {
	t.Parallel()

	// not > must accept equality, unlike <.
	res, err := GreaterThan(v(3), v(3), true, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	lt, err := LessThan(v(3), v(3), false, "")
	require.NoError(t, err)
	assert.False(t, lt.Pass)
}

func TestRelational_UsageError(t *testing.T) {
	t.Parallel()

	_, err := GreaterThan(v("a"), v("b"), false, "")
	require.Error(t, err)
	assert.True(t, aerrors.IsUsage(err))

	_, err = LessThan(v(1), v([]int{1}), false, "")
	assert.True(t, aerrors.IsUsage(err))
}

func TestNull(t *testing.T) {
	t.Parallel()

	var m map[string]int
	assert.True(t, Null(v(nil), false, "").Pass)
	assert.True(t, Null(v(m), false, "").Pass)
	assert.False(t, Null(v(0), false, "").Pass)
	assert.True(t, Null(v(0), true, "").Pass)
}

func TestCloseTo(t *testing.T) {
	t.Parallel()

	res, err := CloseTo(v(3.14159), v(3.14), 2, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = CloseTo(v(3.14159), v(3.15), 2, false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	res, err = CloseTo(v(3.14159), v(3.15), 2, true, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = CloseTo(v(3.14159), v(3.1416), 4, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	_, err = CloseTo(v("pi"), v(3.14), 2, false, "")
	assert.True(t, aerrors.IsUsage(err))
}

func TestNaNAndFinite(t *testing.T) {
	t.Parallel()

	res, err := NaN(v(math.NaN()), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = NaN(v(1.0), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	res, err = Finite(v(1.0), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	for _, x := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		res, err = Finite(v(x), false, "")
		require.NoError(t, err)
		assert.False(t, res.Pass, "Finite(%v)", x)
	}

	_, err = NaN(v("NaN"), false, "")
	assert.True(t, aerrors.IsUsage(err))
}

func TestLength(t *testing.T) {
	t.Parallel()

	res, err := Length(v([]int{1, 2, 3}), 3, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = Length(v("four"), 4, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = Length(v(map[string]int{"a": 1}), 2, false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, "1", res.Actual.Text)
	assert.Equal(t, "2", res.Expected.Text)

	var nilSlice []int
	res, err = Length(v(nilSlice), 0, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	var nilMap map[string]int
	res, err = Length(v(nilMap), 0, false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	_, err = Length(v(5), 1, false, "")
	assert.True(t, aerrors.IsUsage(err))

	_, err = Length(v(nil), 0, false, "")
	assert.True(t, aerrors.IsUsage(err), "untyped nil has no length")
}

func TestInclude_NilSliceIsEmpty(t *testing.T) {
	t.Parallel()

	var xs []int
	res, err := Include(v(xs), v(1), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	res, err = IncludeEqual(v(xs), v(1), true, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)
}

func TestArray_NilSliceIsNotEmptySlice(t *testing.T) {
	t.Parallel()

	var xs []int
	res, err := Array(v(xs), v([]int{}), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, "cannot compare null with array", res.Reason)
}

func TestInclude(t *testing.T) {
	t.Parallel()

	res, err := Include(v([]int{1, 2, 3}), v(2), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = Include(v([]int{1, 2, 3}), v(4), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass)

	nested := [][]int{{1}, {2}}
	res, err = IncludeEqual(v(nested), v([]int{2}), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass, "structural per-element match")

	res, err = Include(v(nested), v([]int{2}), false, "")
	require.NoError(t, err)
	assert.False(t, res.Pass, "identity per-element match on a fresh value")

	res, err = Include(v(nested), v(nested[1]), false, "")
	require.NoError(t, err)
	assert.True(t, res.Pass, "same element identity")
}

func TestInclude_NonArrayIsUsageError(t *testing.T) {
	t.Parallel()

	_, err := Include(v(5), v(5), false, "")
	require.Error(t, err)
	assert.True(t, aerrors.IsUsage(err))

	_, err = IncludeEqual(v("abc"), v("a"), false, "")
	assert.True(t, aerrors.IsUsage(err))
}

func TestTryCall(t *testing.T) {
	t.Parallel()

	panics := func() error { panic("boom") }
	fails := func() error { return errors.New("failed") }
	returns := func() error { return nil }

	assert.True(t, TryCall(panics, false, "").Pass)
	assert.True(t, TryCall(fails, false, "").Pass)
	assert.False(t, TryCall(returns, false, "").Pass)

	assert.False(t, TryCall(panics, true, "").Pass)
	assert.True(t, TryCall(returns, true, "").Pass)

	res := TryCall(returns, false, "")
	require.NotNil(t, res.Actual)
	assert.Equal(t, "returned normally", res.Actual.Text)
}

func TestTryCall_UsageErrorPropagates(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		TryCall(func() error {
			panic(aerrors.Usage(StrategyInclude, "bad"))
		}, false, "")
	})
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "panic: boom", (&PanicError{Value: "boom"}).Error())
	assert.Equal(t, "panic: bad", (&PanicError{Value: errors.New("bad")}).Error())
}
