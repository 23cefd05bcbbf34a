package comparison

import (
	"fmt"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/reflected"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// Truthy passes when actual is truthy.
func Truthy(actual value.Value, negated bool, message string) Result {
	return newResult(StrategyTruthy, actual.Truthy(), negated, message).
		because(classifyReason("truthy", negated)).
		withActual(actual, negated)
}

// Falsy passes when actual is falsy.
func Falsy(actual value.Value, negated bool, message string) Result {
	return newResult(StrategyFalsy, !actual.Truthy(), negated, message).
		because(classifyReason("falsy", negated)).
		withActual(actual, negated)
}

// Null passes when actual is null.
func Null(actual value.Value, negated bool, message string) Result {
	return newResult(StrategyNull, actual.IsNull(), negated, message).
		because(classifyReason("null", negated)).
		withActual(actual, negated)
}

// Length compares the element count of actual with expected.
func Length(actual value.Value, expected int, negated bool, message string) (Result, error) {
	n, ok := actual.Len()
	if !ok {
		return Result{}, errors.Usagef(StrategyLength, "%s (%s) has no length", actual.Kind(), actual.TypeName())
	}
	res := newResult(StrategyLength, n == expected, negated, message).
		because(fmt.Sprintf("length %d compared with %d", n, expected))
	return res.withBoth(value.Of(n), value.Of(expected), negated), nil
}

// Include passes when an element of the array actual is identical to expected.
func Include(actual, expected value.Value, negated bool, message string) (Result, error) {
	return include(StrategyInclude, exactEqual, actual, expected, negated, message)
}

// IncludeEqual passes when an element of the array actual is structurally
// equal to expected.
func IncludeEqual(actual, expected value.Value, negated bool, message string) (Result, error) {
	return include(StrategyIncludeEqual, Structural, actual, expected, negated, message)
}

func include(strategy string, eq func(a, b value.Value) bool, actual, expected value.Value, negated bool, message string) (Result, error) {
	elems, ok := actual.Elems()
	if !ok {
		return Result{}, errors.Usagef(strategy, "called on non-array %s (%s)", actual.Kind(), actual.TypeName())
	}
	raw := false
	for _, elem := range elems {
		if eq(elem, expected) {
			raw = true
			break
		}
	}
	reason := "array does not include the expected value"
	if negated {
		reason = "array includes the expected value"
	}
	return newResult(strategy, raw, negated, message).
		because(reason).
		withBoth(actual, expected, negated), nil
}

// TryCall invokes call and passes when it raises: a panic or a non-nil error
// return both count. Usage errors raised inside call are never swallowed.
func TryCall(call func() error, negated bool, message string) Result {
	err := invoke(call)
	res := newResult(StrategyThrow, err != nil, negated, message)
	if res.Pass {
		return res
	}
	if negated {
		res.Reason = "expected function not to throw"
		a := reflected.Text(err.Error(), negated)
		a.Stack = reflected.CallerStack()
		res.Actual = &a
		return res
	}
	res.Reason = "expected function to throw"
	a := reflected.Text("returned normally", negated)
	a.Stack = reflected.CallerStack()
	res.Actual = &a
	return res
}

// PanicError carries a value recovered from a panicking call.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "panic: " + err.Error()
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

func invoke(call func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if errors.IsUsage(asError(r)) {
			panic(r)
		}
		err = &PanicError{Value: r}
	}()
	return call()
}

func asError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}
