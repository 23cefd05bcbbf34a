package aspect

import (
	"fmt"
	"strconv"

	"github.com/AndreyAkinshin/aspect/internal/comparison"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/reflected"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// T is the handle passed to test bodies and hooks.
type T struct {
	ctx  *TestContext
	node *TestNode
	// tryDepth counts enclosing ToThrow calls. Failures inside them are raised
	// to the call instead of being recorded.
	tryDepth      int
	snapshotIndex int
}

func newT(ctx *TestContext, node *TestNode) *T {
	return &T{ctx: ctx, node: node}
}

// Name returns the name of the running test or group.
func (t *T) Name() string {
	return t.node.Name
}

// Log captures v together with the calling stack on the current node.
func (t *T) Log(v interface{}) {
	t.node.Logs = append(t.node.Logs, reflected.Capture(value.Of(v), false))
}

// Fail fails the current test with msg and stops its body.
func (t *T) Fail(msg string) {
	res := comparison.Result{Strategy: "fail", Message: msg, Index: -1}
	stack := reflected.CallerStack()
	actual := reflected.Text(msg, false)
	actual.Stack = stack
	res.Actual = &actual
	t.record(res)
}

// assertionFailure unwinds a test body after a failed assertion.
type assertionFailure struct {
	result comparison.Result
}

func (f *assertionFailure) Error() string {
	msg := f.result.Strategy + " failed"
	if f.result.Message != "" {
		msg += ": " + f.result.Message
	}
	if f.result.Reason != "" {
		msg += " (" + f.result.Reason + ")"
	}
	return msg
}

// record applies a comparison result. A failure is written to the node, first
// failure wins, and the body is unwound.
func (t *T) record(res comparison.Result) {
	if res.Pass {
		return
	}
	if t.tryDepth == 0 && t.node.Pass {
		n := t.node
		n.Pass = false
		n.Message = res.Message
		n.Reason = res.Reason
		n.Actual = res.Actual
		n.Expected = res.Expected
		if res.Actual != nil {
			n.StackTrace = res.Actual.Stack
		}
	}
	panic(&assertionFailure{result: res})
}

// usage annotates a usage error with the current node and raises it.
func (t *T) usage(err error) {
	if ae, ok := err.(*errors.AspectError); ok && ae.Node == "" {
		ae.Node = t.ctx.Path(t.node)
	}
	panic(err)
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeFailed
	outcomeAborted
)

// run calls fn and classifies how it ended.
func (t *T) run(fn func(*T)) (out outcome) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*assertionFailure); ok {
			out = outcomeFailed
			return
		}
		stack := reflected.CallerStack()
		if err, ok := r.(error); ok && errors.IsUsage(err) {
			t.failWith(err.Error(), stack)
			t.ctx.abort(err, stack)
			out = outcomeAborted
			return
		}
		t.failWith(fmt.Sprintf("uncaught panic: %v", r), stack)
		out = outcomeFailed
	}()
	if fn != nil {
		fn(t)
	}
	return outcomeOK
}

func (t *T) failWith(msg, stack string) {
	if !t.node.Pass {
		return
	}
	t.node.Pass = false
	t.node.Message = msg
	t.node.StackTrace = stack
}

// snapshotKey builds the stable key of the next snapshot taken by this test.
func (t *T) snapshotKey(name string) string {
	if name == "" {
		name = strconv.Itoa(t.snapshotIndex)
		t.snapshotIndex++
	}
	return t.ctx.Path(t.node) + "!~" + name
}
