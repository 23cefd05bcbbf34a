package aspect

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	aerrors "github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/internal/value"
)

// recorder captures every event as a short string.
type recorder struct {
	events   []string
	finished int
}

func (r *recorder) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func label(n *TestNode) string {
	if n.IsRoot() {
		return "<root>"
	}
	return n.Name
}

func (r *recorder) OnEnter(_ *TestContext, n *TestNode)       { r.add("enter %s", label(n)) }
func (r *recorder) OnExit(_ *TestContext, n *TestNode)        { r.add("exit %s", label(n)) }
func (r *recorder) OnGroupStart(_ *TestContext, n *TestNode)  { r.add("group start %s", label(n)) }
func (r *recorder) OnGroupFinish(_ *TestContext, n *TestNode) { r.add("group finish %s", label(n)) }
func (r *recorder) OnTestStart(_ *TestContext, g, n *TestNode) {
	r.add("test start %s/%s", label(g), n.Name)
}
func (r *recorder) OnTestFinish(_ *TestContext, g, n *TestNode) {
	r.add("test finish %s/%s pass=%v", label(g), n.Name, n.Pass)
}
func (r *recorder) OnTodo(_ *TestContext, g *TestNode, todo string) {
	r.add("todo %s: %s", label(g), todo)
}
func (r *recorder) OnLog(_ *TestContext, n *TestNode, log ReflectedValue) {
	r.add("log %s: %s", label(n), log.Text)
}
func (r *recorder) OnFinish(*TestContext) {
	r.finished++
	r.add("finish")
}

func findNode(t *testing.T, c *TestContext, path string) *TestNode {
	t.Helper()
	for _, n := range c.Nodes() {
		if c.Path(n) == path {
			return n
		}
	}
	t.Fatalf("node %q not found", path)
	return nil
}

func TestRun_EndToEnd(t *testing.T) {
	c := New("e2e")
	c.Test("passes", func(t *T) {
		t.Expect(1).ToBe(1)
	})
	c.Test("fails", func(t *T) {
		t.Expect(1).ToBe(2)
	})

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 2, c.TestCount)
	assert.Equal(t, 1, c.TestPassCount)
	assert.False(t, c.Pass())

	failing := findNode(t, c, "fails")
	assert.False(t, failing.Pass)
	require.NotNil(t, failing.Actual)
	require.NotNil(t, failing.Expected)
	assert.Equal(t, "1", failing.Actual.Text)
	assert.Equal(t, "2", failing.Expected.Text)
	assert.False(t, failing.Expected.Negated)
	assert.Equal(t, StateFinished, failing.State)

	passing := findNode(t, c, "passes")
	assert.True(t, passing.Pass)
	assert.Nil(t, passing.Actual)
	assert.Nil(t, passing.Expected)
}

func TestRun_GroupPassFollowsDescendants(t *testing.T) {
	c := New("groups")
	c.Describe("outer", func(g *Group) {
		g.Describe("good", func(g *Group) {
			g.Test("a", func(t *T) { t.Expect(true).ToBeTruthy() })
		})
		g.Describe("bad", func(g *Group) {
			g.Test("b", func(t *T) { t.Expect(0).ToBeTruthy() })
			g.Test("c", func(t *T) { t.Expect(0).ToBeFalsy() })
		})
		g.Describe("empty", func(g *Group) {})
	})

	require.NoError(t, c.Run(context.Background()))

	assert.False(t, findNode(t, c, "outer").Pass)
	assert.True(t, findNode(t, c, "outer good").Pass)
	assert.False(t, findNode(t, c, "outer bad").Pass)
	assert.True(t, findNode(t, c, "outer empty").Pass)
	assert.True(t, findNode(t, c, "outer bad c").Pass, "a failing sibling does not stop later tests")
	assert.False(t, c.RootNode().Pass)

	assert.Equal(t, 3, c.TestCount)
	assert.Equal(t, 2, c.TestPassCount)
	assert.LessOrEqual(t, c.TestPassCount, c.TestCount)
	assert.Equal(t, 5, c.GroupCount, "root, outer, good, bad, empty")
	assert.Equal(t, 2, c.GroupPassCount)
}

func TestRun_EventOrder(t *testing.T) {
	rec := &recorder{}
	c := New("order", WithReporters(rec))
	c.Describe("g", func(g *Group) {
		g.Todo("write more tests")
		g.BeforeAll(func(t *T) { t.Log("setup") })
		g.Test("t1", func(t *T) { t.Log("inside") })
		g.Describe("inner", func(g *Group) {
			g.Test("t2", func(t *T) { t.Expect(1).Not().ToBe(1) })
		})
	})

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []string{
		"enter <root>",
		"group start <root>",
		"enter g",
		"group start g",
		"enter t1",
		"test start g/t1",
		"test finish g/t1 pass=true",
		`log t1: "inside"`,
		"exit t1",
		"enter inner",
		"group start inner",
		"enter t2",
		"test start inner/t2",
		"test finish inner/t2 pass=false",
		"exit t2",
		"group finish inner",
		"exit inner",
		"todo g: write more tests",
		`log g: "setup"`,
		"group finish g",
		"exit g",
		"group finish <root>",
		"exit <root>",
		"finish",
	}, rec.events)
	assert.Equal(t, 1, rec.finished)
}

func TestRun_MultipleReportersSeeSameEvents(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	c := New("multi", WithReporters(a), WithReporters(b))
	c.Test("x", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, a.events, b.events)
}

func TestRun_UncaughtPanicFailsOnlyThatTest(t *testing.T) {
	c := New("panic")
	c.Test("boom", func(t *T) {
		var m map[string]int
		m["x"] = 1
	})
	c.Test("after", func(t *T) { t.Expect("ok").ToBeTruthy() })

	require.NoError(t, c.Run(context.Background()))

	boom := findNode(t, c, "boom")
	assert.False(t, boom.Pass)
	assert.Contains(t, boom.Message, "uncaught panic")
	assert.True(t, findNode(t, c, "after").Pass)
}

func TestRun_FailureStopsBody(t *testing.T) {
	reached := false
	c := New("stop")
	c.Test("t", func(t *T) {
		t.Expect(1).ToBe(2, "first")
		reached = true
		t.Expect(3).ToBe(4, "second")
	})

	require.NoError(t, c.Run(context.Background()))

	assert.False(t, reached)
	assert.Equal(t, "first", findNode(t, c, "t").Message)
}

func TestRun_UsageErrorAbortsRun(t *testing.T) {
	rec := &recorder{}
	ran := false
	c := New("usage", WithReporters(rec))
	c.Describe("g", func(g *Group) {
		g.Test("misuse", func(t *T) {
			t.Expect(42).ToInclude(4)
		})
		g.Test("never", func(t *T) { ran = true })
	})

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, aerrors.IsUsage(err))
	assert.Contains(t, err.Error(), "g misuse")
	assert.Equal(t, aerrors.ExitUsageError, aerrors.GetExitCode(err))

	assert.False(t, ran)
	assert.Equal(t, StateDefined, findNode(t, c, "g never").State)
	assert.False(t, c.Pass())
	require.Len(t, c.Errors, 1)
	assert.Equal(t, "usage", c.Errors[0].Type)
	assert.Equal(t, 1, rec.finished, "reporters still finish")
	assert.Equal(t, "exit <root>", rec.events[len(rec.events)-2])
}

func TestRun_RelationalOnNonNumberIsUsageError(t *testing.T) {
	c := New("usage")
	c.Test("t", func(t *T) { t.Expect("a").ToBeGreaterThan(1) })

	err := c.Run(context.Background())
	assert.True(t, aerrors.IsUsage(err))
}

func TestExpectation_ReuseIsUsageError(t *testing.T) {
	c := New("reuse")
	c.Test("t", func(t *T) {
		e := t.Expect(1).Not()
		e.ToBe(2)
		e.ToBe(1)
	})

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")
}

func TestExpectation_NegationDoesNotLeak(t *testing.T) {
	c := New("neg")
	c.Test("t", func(t *T) {
		t.Expect(1).Not().ToBe(2)
		t.Expect(1).ToBe(1)
	})

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, c.Pass())
}

func TestExpectation_Matchers(t *testing.T) {
	shared := []int{1, 2}
	tests := []struct {
		name string
		body func(t *T)
		pass bool
	}{
		{"strict arrays", func(t *T) { t.Expect([]int{1, 2}).ToStrictEqual([]int{1, 2}) }, true},
		{"strict nested arrays", func(t *T) { t.Expect([][]int{{1}, {2}}).ToStrictEqual([][]int{{1}, {2}}) }, true},
		{"strict strings by content", func(t *T) { t.Expect(strings.Repeat("a", 3)).ToStrictEqual("aaa") }, true},
		{"block bytes", func(t *T) { t.Expect([]byte{1, 2}).ToBlockEqual([]byte{1, 2}) }, true},
		{"block sizes differ", func(t *T) { t.Expect([]byte{1, 2}).ToBlockEqual([]byte{1}) }, false},
		{"not block sizes differ", func(t *T) { t.Expect([]byte{1, 2}).Not().ToBlockEqual([]byte{1}) }, true},
		{"block vs nil negated still fails", func(t *T) { t.Expect([]byte{1}).Not().ToBlockEqual(nil) }, false},
		{"block nil vs nil", func(t *T) { t.Expect(nil).ToBlockEqual(nil) }, true},
		{"toBe identity", func(t *T) { t.Expect(shared).ToBe(shared) }, true},
		{"toBe fresh array", func(t *T) { t.Expect([]int{1, 2}).ToBe([]int{1, 2}) }, false},
		{"toBe runtime string", func(t *T) { t.Expect(strconv.Itoa(123) + "x").ToBe("123x") }, true},
		{"toBe different strings", func(t *T) { t.Expect(strconv.Itoa(123)).ToBe("124") }, false},
		{"toBe string vs bytes", func(t *T) { t.Expect("ab").ToBe([]byte("ab")) }, false},
		{"toBe large int64", func(t *T) { t.Expect(int64(1<<53 + 1)).Not().ToBe(int64(1 << 53)) }, true},
		{"greater large uint64", func(t *T) { t.Expect(uint64(1<<63 + 1)).ToBeGreaterThan(uint64(1 << 63)) }, true},
		{"less large int64", func(t *T) { t.Expect(int64(1 << 53)).ToBeLessThan(int64(1<<53 + 1)) }, true},
		{"greater", func(t *T) { t.Expect(3).ToBeGreaterThan(2) }, true},
		{"not greater means less or equal", func(t *T) { t.Expect(2).Not().ToBeGreaterThan(2) }, true},
		{"greater or equal", func(t *T) { t.Expect(2).ToBeGreaterThanOrEqual(2.0) }, true},
		{"less", func(t *T) { t.Expect(1).ToBeLessThan(2) }, true},
		{"less or equal", func(t *T) { t.Expect(3).ToBeLessThanOrEqual(2) }, false},
		{"null", func(t *T) { t.Expect(nil).ToBeNull() }, true},
		{"not null", func(t *T) { t.Expect(1).Not().ToBeNull() }, true},
		{"close to", func(t *T) { t.Expect(3.14159).ToBeCloseTo(3.14) }, true},
		{"not close to", func(t *T) { t.Expect(3.14159).ToBeCloseTo(3.15) }, false},
		{"close to places", func(t *T) { t.Expect(3.14159).ToBeCloseToPlaces(3.1416, 4) }, true},
		{"nan", func(t *T) { t.Expect(zeroOverZero()).ToBeNaN() }, true},
		{"finite", func(t *T) { t.Expect(1.5).ToBeFinite() }, true},
		{"length", func(t *T) { t.Expect([]string{"a", "b"}).ToHaveLength(2) }, true},
		{"length mismatch", func(t *T) { t.Expect("abc").ToHaveLength(2) }, false},
		{"nil slice length", func(t *T) { t.Expect([]int(nil)).ToHaveLength(0) }, true},
		{"nil map length", func(t *T) { t.Expect(map[string]int(nil)).ToHaveLength(1) }, false},
		{"nil slice include", func(t *T) { t.Expect([]int(nil)).ToInclude(1) }, false},
		{"nil slice not include", func(t *T) { t.Expect([]int(nil)).Not().ToIncludeEqual(1) }, true},
		{"include", func(t *T) { t.Expect([]int{1, 2, 3}).ToInclude(2) }, true},
		{"include identity", func(t *T) { t.Expect([][]int{{1}, {2}}).ToInclude([]int{2}) }, false},
		{"include equal", func(t *T) { t.Expect([][]int{{1}, {2}}).ToIncludeEqual([]int{2}) }, true},
		{"truthy", func(t *T) { t.Expect("x").ToBeTruthy() }, true},
		{"falsy", func(t *T) { t.Expect("").ToBeFalsy() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("matchers")
			c.Test(tt.name, tt.body)
			require.NoError(t, c.Run(context.Background()))
			assert.Equal(t, tt.pass, findNode(t, c, tt.name).Pass)
		})
	}
}

func TestExpectation_NilSliceDoesNotAbortRun(t *testing.T) {
	c := New("nil slices")
	c.Test("empty", func(t *T) {
		var xs []int
		t.Expect(xs).ToHaveLength(0)
		t.Expect(xs).Not().ToInclude(0)
	})
	c.Test("after", func(t *T) { t.Expect(1).ToBe(1) })

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, findNode(t, c, "empty").Pass)
	assert.Equal(t, StateFinished, findNode(t, c, "after").State)
	assert.True(t, c.Pass())
}

func zeroOverZero() float64 {
	zero := 0.0
	return zero / zero
}

func TestExpectation_ToThrow(t *testing.T) {
	tests := []struct {
		name string
		body func(t *T)
		pass bool
	}{
		{"panic", func(t *T) { t.ExpectFn(func() { panic("x") }).ToThrow() }, true},
		{"normal return", func(t *T) { t.ExpectFn(func() {}).ToThrow() }, false},
		{"not throw on normal return", func(t *T) { t.ExpectFn(func() {}).Not().ToThrow() }, true},
		{"error return", func(t *T) { t.Expect(func() error { return errors.New("bad") }).ToThrow() }, true},
		{"nil error return", func(t *T) { t.Expect(func() error { return nil }).ToThrow() }, false},
		{"failed assertion inside", func(t *T) {
			t.ExpectFn(func() { t.Expect(1).ToBe(2) }).ToThrow()
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("throw")
			c.Test(tt.name, tt.body)
			require.NoError(t, c.Run(context.Background()))
			node := findNode(t, c, tt.name)
			assert.Equal(t, tt.pass, node.Pass)
			if tt.pass {
				assert.Empty(t, node.Message, "assertions inside the callable are not recorded")
			}
		})
	}
}

func TestExpectation_ToThrowOnNonFunction(t *testing.T) {
	c := New("throw")
	c.Test("t", func(t *T) { t.Expect(3).ToThrow() })
	assert.True(t, aerrors.IsUsage(c.Run(context.Background())))
}

func TestThrowsTest(t *testing.T) {
	rec := &recorder{}
	c := New("throws", WithReporters(rec))
	c.Throws("fails as expected", func(t *T) { t.Expect(1).ToBe(2) })
	c.Throws("panics as expected", func(t *T) { panic("boom") })
	c.Throws("unexpectedly passes", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))

	ok := findNode(t, c, "fails as expected")
	assert.True(t, ok.Pass)
	assert.True(t, ok.Negated)
	assert.Nil(t, ok.Actual)
	assert.True(t, findNode(t, c, "panics as expected").Pass)

	bad := findNode(t, c, "unexpectedly passes")
	assert.False(t, bad.Pass)
	assert.Equal(t, "expected test to throw", bad.Message)
	assert.Equal(t, 2, c.TestPassCount)
}

func TestHooks_Order(t *testing.T) {
	var calls []string
	c := New("hooks")
	c.BeforeEach(func(t *T) { calls = append(calls, "root beforeEach "+t.Name()) })
	c.AfterEach(func(t *T) { calls = append(calls, "root afterEach "+t.Name()) })
	c.Describe("g", func(g *Group) {
		g.BeforeAll(func(t *T) { calls = append(calls, "g beforeAll") })
		g.AfterAll(func(t *T) { calls = append(calls, "g afterAll") })
		g.BeforeEach(func(t *T) { calls = append(calls, "g beforeEach "+t.Name()) })
		g.AfterEach(func(t *T) { calls = append(calls, "g afterEach "+t.Name()) })
		g.Test("a", func(t *T) { calls = append(calls, "a") })
		g.Test("b", func(t *T) { calls = append(calls, "b") })
	})

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, c.Pass())
	assert.Equal(t, []string{
		"g beforeAll",
		"root beforeEach a", "g beforeEach a", "a", "g afterEach a", "root afterEach a",
		"root beforeEach b", "g beforeEach b", "b", "g afterEach b", "root afterEach b",
		"g afterAll",
	}, calls)
}

func TestHooks_BeforeEachFailureFailsTest(t *testing.T) {
	bodyRan := false
	c := New("hooks")
	c.BeforeEach(func(t *T) { t.Expect(false).ToBeTruthy("setup") })
	c.Test("t", func(t *T) { bodyRan = true })

	require.NoError(t, c.Run(context.Background()))

	assert.False(t, bodyRan)
	node := findNode(t, c, "t")
	assert.False(t, node.Pass)
	assert.Equal(t, "setup", node.Message)
}

func TestHooks_AfterEachFailureFailsTest(t *testing.T) {
	c := New("hooks")
	c.AfterEach(func(t *T) { t.Fail("teardown broke") })
	c.Test("t", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))
	assert.False(t, findNode(t, c, "t").Pass)
	assert.Equal(t, "teardown broke", findNode(t, c, "t").Message)
}

func TestHooks_BeforeAllFailureBlocksDescendants(t *testing.T) {
	ran := false
	c := New("hooks")
	c.Describe("g", func(g *Group) {
		g.BeforeAll(func(t *T) { panic("no database") })
		g.AfterAll(func(t *T) { ran = true })
		g.Test("a", func(t *T) { ran = true })
		g.Describe("inner", func(g *Group) {
			g.Test("b", func(t *T) { ran = true })
		})
	})
	c.Test("outside", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))

	assert.False(t, ran)
	for _, path := range []string{"g a", "g inner b"} {
		n := findNode(t, c, path)
		assert.False(t, n.Pass, path)
		assert.Contains(t, n.Message, "beforeAll hook")
		assert.Contains(t, n.Message, "no database")
	}
	assert.True(t, findNode(t, c, "outside").Pass)
	assert.Equal(t, 3, c.TestCount)
	assert.Equal(t, 1, c.TestPassCount)
}

func TestHooks_AfterAllFailureIsContextError(t *testing.T) {
	c := New("hooks")
	c.Describe("g", func(g *Group) {
		g.AfterAll(func(t *T) { t.Expect(1).ToBe(2, "cleanup") })
		g.Test("a", func(t *T) {})
	})

	require.NoError(t, c.Run(context.Background()))

	assert.True(t, c.RootNode().Pass)
	require.Len(t, c.Errors, 1)
	assert.Equal(t, "afterAll", c.Errors[0].Type)
	assert.Contains(t, c.Errors[0].Message, "cleanup")
	assert.False(t, c.Pass())
}

func TestLogsAndTodos(t *testing.T) {
	c := New("logs")
	c.Todo("top level todo")
	c.Test("t", func(t *T) {
		t.Log(42)
		t.Log([]int{1, 2})
	})

	require.NoError(t, c.Run(context.Background()))

	node := findNode(t, c, "t")
	require.Len(t, node.Logs, 2)
	assert.Equal(t, "42", node.Logs[0].Text)
	assert.Equal(t, value.KindArray, node.Logs[1].Kind)
	assert.Equal(t, []string{"top level todo"}, c.RootNode().Todos)
}

func TestSnapshots(t *testing.T) {
	store := snapshot.NewMemoryStore(snapshot.Snapshots{
		"math adds!~0":    "3",
		"math adds!~list": "[1, 2]",
		"math removed!~0": "gone",
	})
	c := New("snapshots", WithSnapshotStore(store))
	c.Describe("math", func(g *Group) {
		g.Test("adds", func(t *T) {
			t.Expect(1 + 2).ToMatchSnapshot()
			t.Expect([]int{1, 3}).ToMatchSnapshot("list")
			t.Expect("new").ToMatchSnapshot()
		})
	})

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, snapshot.Snapshots{
		"math adds!~0":    "3",
		"math adds!~list": "[1, 3]",
		"math adds!~1":    `"new"`,
	}, c.Captured())

	diff := c.SnapshotDiff
	require.NotNil(t, diff)
	assert.Equal(t, snapshot.NoChange, diff.Results["math adds!~0"].Kind)
	assert.Equal(t, snapshot.Different, diff.Results["math adds!~list"].Kind)
	assert.Equal(t, snapshot.Added, diff.Results["math adds!~1"].Kind)
	assert.Equal(t, snapshot.Removed, diff.Results["math removed!~0"].Kind)
	assert.True(t, c.Pass(), "snapshot differences do not fail tests")
}

func TestSnapshots_DuplicateKeyWarns(t *testing.T) {
	c := New("snapshots")
	c.Test("t", func(t *T) {
		t.Expect(1).ToMatchSnapshot("same")
		t.Expect(2).ToMatchSnapshot("same")
	})

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0].Message, `duplicate snapshot key "t!~same"`)
	assert.Equal(t, "2", c.Captured()["t!~same"])
}

func TestSnapshots_NegatedIsUsageError(t *testing.T) {
	c := New("snapshots")
	c.Test("t", func(t *T) { t.Expect(1).Not().ToMatchSnapshot() })
	assert.True(t, aerrors.IsUsage(c.Run(context.Background())))
}

type failingStore struct{}

func (failingStore) Load(context.Context) (snapshot.Snapshots, error) {
	return nil, errors.New("unreachable")
}

func (failingStore) Save(context.Context, snapshot.Snapshots) error {
	return errors.New("unreachable")
}

func TestRun_StoreLoadError(t *testing.T) {
	c := New("store", WithSnapshotStore(failingStore{}))
	c.Test("t", func(t *T) {})

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
	assert.True(t, findNode(t, c, "t").Pass, "tests still run")
	assert.False(t, c.Pass())
}

func TestRun_OnlyOnce(t *testing.T) {
	c := New("once")
	c.Test("t", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, aerrors.IsUsage(c.Run(context.Background())))
	assert.Panics(t, func() { c.Test("late", func(t *T) {}) })
	assert.Panics(t, func() { c.Todo("late") })
}

func TestRun_Logger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New("logged", WithLogger(zap.New(core)))
	c.Test("t", func(t *T) {})

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 1, logs.FilterMessage("enter test").Len())
	assert.Equal(t, 1, logs.FilterMessage("run finished").Len())
}

func TestPath(t *testing.T) {
	c := New("paths")
	c.Describe("a", func(g *Group) {
		g.Describe("b", func(g *Group) {
			g.Test("c", func(t *T) {})
		})
	})

	n := findNode(t, c, "a b c")
	assert.Equal(t, KindTest, n.Kind)
	assert.Equal(t, "", c.Path(c.RootNode()))
	assert.Nil(t, c.Node(NoNode))
	assert.Equal(t, "group", KindGroup.String())
	assert.Equal(t, "finished", StateFinished.String())
}
