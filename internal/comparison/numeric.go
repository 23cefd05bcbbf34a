package comparison

import (
	"fmt"
	"math"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

type relation struct {
	strategy string
	symbol   string
	holds    func(c int) bool
}

var (
	greater        = relation{StrategyGreater, ">", func(c int) bool { return c > 0 }}
	greaterOrEqual = relation{StrategyGreaterOrEqual, ">=", func(c int) bool { return c >= 0 }}
	less           = relation{StrategyLess, "<", func(c int) bool { return c < 0 }}
	lessOrEqual    = relation{StrategyLessOrEqual, "<=", func(c int) bool { return c <= 0 }}
)

// GreaterThan passes when actual > expected. Negated, it passes when
// actual <= expected.
func GreaterThan(actual, expected value.Value, negated bool, message string) (Result, error) {
	return compareOrdered(greater, actual, expected, negated, message)
}

// GreaterThanOrEqual passes when actual >= expected.
func GreaterThanOrEqual(actual, expected value.Value, negated bool, message string) (Result, error) {
	return compareOrdered(greaterOrEqual, actual, expected, negated, message)
}

// LessThan passes when actual < expected.
func LessThan(actual, expected value.Value, negated bool, message string) (Result, error) {
	return compareOrdered(less, actual, expected, negated, message)
}

// LessThanOrEqual passes when actual <= expected.
func LessThanOrEqual(actual, expected value.Value, negated bool, message string) (Result, error) {
	return compareOrdered(lessOrEqual, actual, expected, negated, message)
}

func compareOrdered(rel relation, actual, expected value.Value, negated bool, message string) (Result, error) {
	if _, _, err := orderable(rel.strategy, actual, expected); err != nil {
		return Result{}, err
	}
	// NaN is unordered: every relation is false.
	c, ok := value.Compare(actual, expected)
	raw := ok && rel.holds(c)
	a, e := actual.Raw(), expected.Raw()
	reason := fmt.Sprintf("expected %v %s %v", a, rel.symbol, e)
	if negated {
		reason = fmt.Sprintf("expected not %v %s %v", a, rel.symbol, e)
	}
	return newResult(rel.strategy, raw, negated, message).
		because(reason).
		withBoth(actual, expected, negated), nil
}

func orderable(strategy string, actual, expected value.Value) (float64, float64, error) {
	a, ok := actual.Float()
	if !ok {
		return 0, 0, errors.Usagef(strategy, "actual %s (%s) is not orderable", actual.Kind(), actual.TypeName())
	}
	e, ok := expected.Float()
	if !ok {
		return 0, 0, errors.Usagef(strategy, "expected %s (%s) is not orderable", expected.Kind(), expected.TypeName())
	}
	return a, e, nil
}

// CloseTo passes when actual and expected round to the same value at the given
// number of decimal places: |actual - expected| < 10^-decimalPlaces / 2.
func CloseTo(actual, expected value.Value, decimalPlaces int, negated bool, message string) (Result, error) {
	a, e, err := orderable(StrategyCloseTo, actual, expected)
	if err != nil {
		return Result{}, err
	}
	if decimalPlaces < 0 {
		return Result{}, errors.Usagef(StrategyCloseTo, "decimal places must not be negative, got %d", decimalPlaces)
	}
	tolerance := math.Pow(10, -float64(decimalPlaces)) / 2
	raw := math.Abs(a-e) < tolerance
	return newResult(StrategyCloseTo, raw, negated, message).
		because(fmt.Sprintf("|%v - %v| compared with tolerance %v", a, e, tolerance)).
		withBoth(actual, expected, negated), nil
}

// NaN passes when actual is a NaN number.
func NaN(actual value.Value, negated bool, message string) (Result, error) {
	a, ok := actual.Float()
	if !ok {
		return Result{}, errors.Usagef(StrategyNaN, "actual %s (%s) is not a number", actual.Kind(), actual.TypeName())
	}
	raw := math.IsNaN(a)
	return newResult(StrategyNaN, raw, negated, message).
		because(classifyReason("NaN", negated)).
		withActual(actual, negated), nil
}

// Finite passes when actual is neither NaN nor infinite.
func Finite(actual value.Value, negated bool, message string) (Result, error) {
	a, ok := actual.Float()
	if !ok {
		return Result{}, errors.Usagef(StrategyFinite, "actual %s (%s) is not a number", actual.Kind(), actual.TypeName())
	}
	raw := !math.IsNaN(a) && !math.IsInf(a, 0)
	return newResult(StrategyFinite, raw, negated, message).
		because(classifyReason("finite", negated)).
		withActual(actual, negated), nil
}

func classifyReason(class string, negated bool) string {
	if negated {
		return "expected value not to be " + class
	}
	return "expected value to be " + class
}
