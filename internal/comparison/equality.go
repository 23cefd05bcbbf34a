package comparison

import (
	"bytes"
	"fmt"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// Exact compares scalars by value and everything else by identity. Two nulls
// are equal.
func Exact(actual, expected value.Value, negated bool, message string) Result {
	raw := exactEqual(actual, expected)
	return newResult(StrategyExact, raw, negated, message).
		because(mismatchReason(actual, expected, negated)).
		withBoth(actual, expected, negated)
}

func exactEqual(actual, expected value.Value) bool {
	if actual.IsNull() || expected.IsNull() {
		return actual.IsNull() && expected.IsNull()
	}
	return actual.SameIdentity(expected)
}

// Strict dispatches on the category of expected (or of actual when expected is
// null): scalars and nulls use Exact, arrays use Array, blocks use Block and
// everything else uses Reference.
func Strict(actual, expected value.Value, negated bool, message string) (Result, error) {
	var (
		res Result
		err error
	)
	switch dispatchKind(actual, expected) {
	case value.KindNull, value.KindScalar:
		res = Exact(actual, expected, negated, message)
	case value.KindArray:
		res, err = Array(actual, expected, negated, message)
	case value.KindBlock:
		res, err = Block(actual, expected, negated, message)
	default:
		res = Reference(actual, expected, negated, message)
	}
	res.Strategy = StrategyStrict
	return res, err
}

func dispatchKind(actual, expected value.Value) value.Kind {
	if expected.IsNull() {
		return actual.Kind()
	}
	return expected.Kind()
}

// Structural reports whether actual and expected are structurally equal, using
// the same dispatch as Strict without negation.
func Structural(actual, expected value.Value) bool {
	switch dispatchKind(actual, expected) {
	case value.KindNull, value.KindScalar:
		return exactEqual(actual, expected)
	case value.KindArray:
		eq, _ := arrayEqual(actual, expected)
		return eq
	case value.KindBlock:
		if actual.SameIdentity(expected) {
			return true
		}
		return blockEqual(actual, expected)
	default:
		return actual.SameIdentity(expected)
	}
}

// Block compares two byte buffers by content.
//
// Identical buffers short-circuit to Exact, which is also how null compared
// with null passes. A null paired with a non-null buffer always fails,
// whatever the negation flag. Buffers of different size fail without a byte
// scan.
func Block(actual, expected value.Value, negated bool, message string) (Result, error) {
	if actual.SameIdentity(expected) {
		res := Exact(actual, expected, negated, message)
		res.Strategy = StrategyBlock
		return res, nil
	}
	if actual.Kind() != value.KindBlock && expected.Kind() != value.KindBlock &&
		!(actual.IsNull() || expected.IsNull()) {
		return Result{}, errors.Usagef(StrategyBlock, "cannot compare %s with %s as blocks", actual.Kind(), expected.Kind())
	}

	if actual.IsNull() != expected.IsNull() {
		res := Result{
			Pass:     false,
			Strategy: StrategyBlock,
			Message:  message,
			Reason:   "exactly one block is null",
			Index:    -1,
		}
		return res.withBoth(actual, expected, negated), nil
	}

	ab, aok := actual.Block()
	eb, eok := expected.Block()
	if !aok || !eok {
		res := newResult(StrategyBlock, false, negated, message).
			because(fmt.Sprintf("cannot compare %s with %s", actual.Kind(), expected.Kind()))
		return res.withBoth(actual, expected, negated), nil
	}

	if ab.Len != eb.Len {
		res := newResult(StrategyBlock, false, negated, message).
			because(fmt.Sprintf("block sizes differ: %d != %d", ab.Len, eb.Len))
		return res.withBoth(actual, expected, negated), nil
	}

	raw := bytes.Equal(ab.Data[:ab.Len], eb.Data[:eb.Len])
	res := newResult(StrategyBlock, raw, negated, message).
		because(mismatchReason(actual, expected, negated))
	return res.withBoth(actual, expected, negated), nil
}

func blockEqual(actual, expected value.Value) bool {
	ab, aok := actual.Block()
	eb, eok := expected.Block()
	if !aok || !eok || ab.Len != eb.Len {
		return false
	}
	return bytes.Equal(ab.Data[:ab.Len], eb.Data[:eb.Len])
}

// Reference compares identities only; content is never inspected.
func Reference(actual, expected value.Value, negated bool, message string) Result {
	raw := actual.SameIdentity(expected)
	return newResult(StrategyReference, raw, negated, message).
		because(mismatchReason(actual, expected, negated)).
		withBoth(actual, expected, negated)
}

// Array compares lengths first, then each element structurally in order. The
// first mismatching index is reported in Result.Index.
func Array(actual, expected value.Value, negated bool, message string) (Result, error) {
	if actual.Kind() != value.KindArray && expected.Kind() != value.KindArray {
		return Result{}, errors.Usagef(StrategyArray, "cannot compare %s with %s as arrays", actual.Kind(), expected.Kind())
	}

	raw, index := arrayEqual(actual, expected)
	res := newResult(StrategyArray, raw, negated, message)
	if !raw {
		res.Index = index
	}
	switch {
	case res.Pass:
	case negated:
		res.Reason = "arrays are equal"
	case index >= 0:
		res.Reason = fmt.Sprintf("arrays differ at index %d", index)
	default:
		res.Reason = lengthReason(actual, expected)
	}
	return res.withBoth(actual, expected, negated), nil
}

// arrayEqual returns whether both arrays are structurally equal and, when they
// are not but have equal length, the first mismatching index.
func arrayEqual(actual, expected value.Value) (bool, int) {
	if actual.IsNull() || expected.IsNull() {
		return actual.IsNull() && expected.IsNull(), -1
	}
	ae, aok := actual.Elems()
	ee, eok := expected.Elems()
	if !aok || !eok {
		return actual.IsNull() && expected.IsNull(), -1
	}
	if len(ae) != len(ee) {
		return false, -1
	}
	for i := range ae {
		if !Structural(ae[i], ee[i]) {
			return false, i
		}
	}
	return true, -1
}

func lengthReason(actual, expected value.Value) string {
	an, aok := actual.Len()
	en, eok := expected.Len()
	if !aok || !eok || actual.IsNull() || expected.IsNull() {
		return fmt.Sprintf("cannot compare %s with %s", actual.Kind(), expected.Kind())
	}
	return fmt.Sprintf("lengths differ: %d != %d", an, en)
}

func mismatchReason(actual, expected value.Value, negated bool) string {
	if negated {
		return "values are equal"
	}
	if actual.Kind() != expected.Kind() {
		return fmt.Sprintf("%s is not %s", actual.Kind(), expected.Kind())
	}
	return "values are not equal"
}
