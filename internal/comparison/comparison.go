// Package comparison implements the comparison strategies behind every
// assertion.
//
// Every strategy computes an unnegated judgment and derives its verdict as
// negated XOR judgment. Strategies are pure: they never record state or stop
// a test. Callers decide what a failing Result means.
package comparison

import (
	"github.com/AndreyAkinshin/aspect/internal/reflected"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// Strategy names, as reported in results and usage errors.
const (
	StrategyExact          = "toBe"
	StrategyStrict         = "toStrictEqual"
	StrategyBlock          = "toBlockEqual"
	StrategyReference      = "referenceEqual"
	StrategyArray          = "arrayEqual"
	StrategyTruthy         = "toBeTruthy"
	StrategyFalsy          = "toBeFalsy"
	StrategyThrow          = "toThrow"
	StrategyGreater        = "toBeGreaterThan"
	StrategyGreaterOrEqual = "toBeGreaterThanOrEqual"
	StrategyLess           = "toBeLessThan"
	StrategyLessOrEqual    = "toBeLessThanOrEqual"
	StrategyNull           = "toBeNull"
	StrategyCloseTo        = "toBeCloseTo"
	StrategyNaN            = "toBeNaN"
	StrategyFinite         = "toBeFinite"
	StrategyLength         = "toHaveLength"
	StrategyInclude        = "toInclude"
	StrategyIncludeEqual   = "toIncludeEqual"
)

// DefaultDecimalPlaces is the precision used by CloseTo when none is given.
const DefaultDecimalPlaces = 2

// Result is the verdict of one strategy invocation.
type Result struct {
	Pass     bool
	Strategy string
	// Message is the caller supplied description of the assertion.
	Message string
	// Reason explains a failing verdict in engine terms.
	Reason   string
	Actual   *reflected.Value
	Expected *reflected.Value
	// Index is the first mismatching array index, or -1.
	Index int
}

func verdict(raw, negated bool) bool {
	return negated != raw
}

func newResult(strategy string, raw, negated bool, message string) Result {
	return Result{
		Pass:     verdict(raw, negated),
		Strategy: strategy,
		Message:  message,
		Index:    -1,
	}
}

// withBoth attaches actual and expected diagnostics to a failing result. The
// negation flag is carried on the expected side, which is where reporters
// print "Not".
func (r Result) withBoth(actual, expected value.Value, negated bool) Result {
	if r.Pass {
		return r
	}
	a := reflected.Capture(actual, false)
	e := reflected.New(expected, negated)
	e.Stack = a.Stack
	r.Actual = &a
	r.Expected = &e
	return r
}

// withActual attaches only the actual diagnostic to a failing result, used by
// strategies that have no expected value.
func (r Result) withActual(actual value.Value, negated bool) Result {
	if r.Pass {
		return r
	}
	a := reflected.Capture(actual, negated)
	r.Actual = &a
	return r
}

func (r Result) because(reason string) Result {
	if !r.Pass {
		r.Reason = reason
	}
	return r
}
