package aspect

import (
	"strings"

	"github.com/AndreyAkinshin/aspect/internal/comparison"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/reflected"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// Expectation binds one actual value to one terminal assertion. Not sets the
// negation flag; the terminal call consumes it and invalidates the
// Expectation, so calling a second terminal is a usage error.
type Expectation struct {
	t       *T
	actual  interface{}
	call    func() error
	negated bool
	used    bool
}

// Expect starts an assertion on actual.
func (t *T) Expect(actual interface{}) *Expectation {
	return &Expectation{t: t, actual: actual}
}

// ExpectFn starts an assertion on a callable, for use with ToThrow.
func (t *T) ExpectFn(fn func()) *Expectation {
	return &Expectation{t: t, actual: fn, call: func() error {
		fn()
		return nil
	}}
}

// Not negates the next terminal call.
func (e *Expectation) Not() *Expectation {
	e.negated = true
	return e
}

// consume marks the expectation as used and returns its negation flag.
func (e *Expectation) consume(strategy string) bool {
	if e.used {
		e.t.usage(errors.Usage(strategy, "expectation already used by a previous assertion"))
	}
	e.used = true
	return e.negated
}

func (e *Expectation) check(res comparison.Result, err error) {
	if err != nil {
		e.t.usage(err)
	}
	e.t.record(res)
}

func message(msg []string) string {
	return strings.Join(msg, " ")
}

func (e *Expectation) actualValue() value.Value {
	return value.Of(e.actual)
}

// ToBe compares scalars by value and everything else by identity.
func (e *Expectation) ToBe(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyExact)
	e.check(comparison.Exact(e.actualValue(), value.Of(expected), neg, message(msg)), nil)
}

// ToStrictEqual compares structurally: arrays element by element, strings and
// byte slices by content, references by identity.
func (e *Expectation) ToStrictEqual(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyStrict)
	e.check(comparison.Strict(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBlockEqual compares two blocks byte by byte.
func (e *Expectation) ToBlockEqual(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyBlock)
	e.check(comparison.Block(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBeTruthy passes for values that are not zero, empty or null.
func (e *Expectation) ToBeTruthy(msg ...string) {
	neg := e.consume(comparison.StrategyTruthy)
	e.check(comparison.Truthy(e.actualValue(), neg, message(msg)), nil)
}

// ToBeFalsy passes for zero, empty and null values.
func (e *Expectation) ToBeFalsy(msg ...string) {
	neg := e.consume(comparison.StrategyFalsy)
	e.check(comparison.Falsy(e.actualValue(), neg, message(msg)), nil)
}

// ToThrow calls the actual value and passes if it panics, fails an assertion
// or returns a non-nil error. The actual value must be a func() or a
// func() error.
func (e *Expectation) ToThrow(msg ...string) {
	neg := e.consume(comparison.StrategyThrow)
	call := e.callable()
	e.t.tryDepth++
	res := func() comparison.Result {
		defer func() { e.t.tryDepth-- }()
		return comparison.TryCall(call, neg, message(msg))
	}()
	e.check(res, nil)
}

func (e *Expectation) callable() func() error {
	if e.call != nil {
		return e.call
	}
	switch fn := e.actual.(type) {
	case func():
		return func() error {
			fn()
			return nil
		}
	case func() error:
		return fn
	case func(*T):
		return func() error {
			fn(e.t)
			return nil
		}
	}
	e.t.usage(errors.Usagef(comparison.StrategyThrow, "called on non-function %s", e.actualValue().TypeName()))
	return nil
}

// ToBeGreaterThan passes when actual > expected.
func (e *Expectation) ToBeGreaterThan(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyGreater)
	e.check(comparison.GreaterThan(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBeGreaterThanOrEqual passes when actual >= expected.
func (e *Expectation) ToBeGreaterThanOrEqual(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyGreaterOrEqual)
	e.check(comparison.GreaterThanOrEqual(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBeLessThan passes when actual < expected.
func (e *Expectation) ToBeLessThan(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyLess)
	e.check(comparison.LessThan(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBeLessThanOrEqual passes when actual <= expected.
func (e *Expectation) ToBeLessThanOrEqual(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyLessOrEqual)
	e.check(comparison.LessThanOrEqual(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToBeNull passes for nil values.
func (e *Expectation) ToBeNull(msg ...string) {
	neg := e.consume(comparison.StrategyNull)
	e.check(comparison.Null(e.actualValue(), neg, message(msg)), nil)
}

// ToBeCloseTo passes when actual rounds to expected at two decimal places.
func (e *Expectation) ToBeCloseTo(expected interface{}, msg ...string) {
	e.ToBeCloseToPlaces(expected, comparison.DefaultDecimalPlaces, msg...)
}

// ToBeCloseToPlaces passes when actual rounds to expected at the given number
// of decimal places.
func (e *Expectation) ToBeCloseToPlaces(expected interface{}, decimalPlaces int, msg ...string) {
	neg := e.consume(comparison.StrategyCloseTo)
	e.check(comparison.CloseTo(e.actualValue(), value.Of(expected), decimalPlaces, neg, message(msg)))
}

// ToBeNaN passes when actual is a NaN float.
func (e *Expectation) ToBeNaN(msg ...string) {
	neg := e.consume(comparison.StrategyNaN)
	e.check(comparison.NaN(e.actualValue(), neg, message(msg)))
}

// ToBeFinite passes when actual is a number that is neither NaN nor infinite.
func (e *Expectation) ToBeFinite(msg ...string) {
	neg := e.consume(comparison.StrategyFinite)
	e.check(comparison.Finite(e.actualValue(), neg, message(msg)))
}

// ToHaveLength compares the element count of actual with expected.
func (e *Expectation) ToHaveLength(expected int, msg ...string) {
	neg := e.consume(comparison.StrategyLength)
	e.check(comparison.Length(e.actualValue(), expected, neg, message(msg)))
}

// ToInclude passes when an element of the array actual is identical to
// expected.
func (e *Expectation) ToInclude(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyInclude)
	e.check(comparison.Include(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// ToIncludeEqual passes when an element of the array actual is structurally
// equal to expected.
func (e *Expectation) ToIncludeEqual(expected interface{}, msg ...string) {
	neg := e.consume(comparison.StrategyIncludeEqual)
	e.check(comparison.IncludeEqual(e.actualValue(), value.Of(expected), neg, message(msg)))
}

// StrategySnapshot names the snapshot assertion in usage errors.
const StrategySnapshot = "toMatchSnapshot"

// ToMatchSnapshot records the stringified actual value under a stable key. The
// value is compared against the stored baseline after the run. Without a name
// the key uses the index of the snapshot within the test.
func (e *Expectation) ToMatchSnapshot(name ...string) {
	if e.consume(StrategySnapshot) {
		e.t.usage(errors.Usage(StrategySnapshot, "snapshots cannot be negated"))
	}
	key := e.t.snapshotKey(strings.Join(name, " "))
	serialized := reflected.New(e.actualValue(), false).Stringify(e.t.ctx.props)
	e.t.ctx.recordSnapshot(key, serialized, reflected.CallerStack())
}
