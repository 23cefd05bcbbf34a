// Package aspect is a unit-testing engine: a tree of groups and tests, an
// assertion façade used inside test bodies, and a reporter protocol fed by the
// runner.
//
// A suite is defined first and run once:
//
//	ctx := aspect.New("math")
//	ctx.Describe("add", func(g *aspect.Group) {
//		g.Test("small numbers", func(t *aspect.T) {
//			t.Expect(1 + 2).ToBe(3)
//		})
//	})
//	err := ctx.Run(context.Background())
//
// Assertion failures are recorded on the test and never stop sibling tests.
// Misusing an assertion, for example calling ToInclude on a non-array, is a
// usage error: the run stops and Run returns it.
package aspect

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/reflected"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
)

// Problem is a context-level warning or error, distinct from test failures.
type Problem struct {
	Type       string
	Message    string
	StackTrace string
}

// TestContext owns a test tree, runs it once and aggregates its results.
type TestContext struct {
	*Group

	FileName string

	TestCount      int
	TestPassCount  int
	GroupCount     int
	GroupPassCount int

	Warnings []Problem
	Errors   []Problem

	// SnapshotDiff is set once the tree has run.
	SnapshotDiff *snapshot.ResultSet

	nodes     []*TestNode
	reporters []Reporter
	store     snapshot.Store
	baseline  snapshot.Snapshots
	captured  snapshot.Snapshots
	props     reflected.Props
	logger    *zap.Logger
	started   bool
	aborted   error
	startTime time.Time
}

// Option configures a TestContext.
type Option func(*TestContext)

// WithReporters registers reporters. Each receives every event.
func WithReporters(reporters ...Reporter) Option {
	return func(c *TestContext) {
		c.reporters = append(c.reporters, reporters...)
	}
}

// WithSnapshotStore sets the store the baseline is loaded from.
func WithSnapshotStore(store snapshot.Store) Option {
	return func(c *TestContext) {
		c.store = store
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *TestContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStringifyProps sets how captured snapshot values are rendered.
func WithStringifyProps(p StringifyProps) Option {
	return func(c *TestContext) {
		c.props = p
	}
}

// New creates a context with an empty root group.
func New(fileName string, opts ...Option) *TestContext {
	c := &TestContext{
		FileName: fileName,
		captured: snapshot.Snapshots{},
		props:    reflected.DefaultProps(),
		logger:   zap.NewNop(),
	}
	root := c.addNode(KindGroup, "", NoNode)
	c.Group = &Group{ctx: c, id: root.ID}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TestContext) addNode(kind NodeKind, name string, parent NodeID) *TestNode {
	if c.started {
		panic(errors.Usagef("", "cannot add %s %q after the run started", kind, name))
	}
	n := &TestNode{
		ID:     NodeID(len(c.nodes)),
		Kind:   kind,
		Name:   name,
		Parent: parent,
	}
	c.nodes = append(c.nodes, n)
	if parent != NoNode {
		p := c.nodes[parent]
		p.Children = append(p.Children, n.ID)
	}
	return n
}

// RootNode returns the root group.
func (c *TestContext) RootNode() *TestNode {
	return c.nodes[0]
}

// Node resolves id, or returns nil for NoNode.
func (c *TestContext) Node(id NodeID) *TestNode {
	if id < 0 || int(id) >= len(c.nodes) {
		return nil
	}
	return c.nodes[id]
}

// Nodes returns every node in definition order.
func (c *TestContext) Nodes() []*TestNode {
	return c.nodes
}

// Path returns the names of n and its ancestors below the root, joined by
// spaces.
func (c *TestContext) Path(n *TestNode) string {
	var names []string
	for cur := n; cur != nil && !cur.IsRoot(); cur = c.Node(cur.Parent) {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}

// describe names n for messages; the root is named after the file.
func (c *TestContext) describe(n *TestNode) string {
	if n.IsRoot() {
		return strconv.Quote(c.FileName)
	}
	return strconv.Quote(c.Path(n))
}

// Captured returns the snapshots recorded during the run.
func (c *TestContext) Captured() snapshot.Snapshots {
	return c.captured
}

// Pass reports whether every test passed and no context error was recorded.
func (c *TestContext) Pass() bool {
	return c.RootNode().Pass && len(c.Errors) == 0
}

// Err returns the usage error that aborted the run, if any.
func (c *TestContext) Err() error {
	return c.aborted
}

// Run executes the tree once, computes the snapshot diff and notifies
// reporters. It returns the usage error that aborted the run, or an error from
// loading the snapshot baseline.
func (c *TestContext) Run(ctx context.Context) error {
	if c.started {
		return errors.Usage("", "context already ran")
	}
	c.started = true
	c.TestCount, c.TestPassCount, c.GroupCount, c.GroupPassCount = 0, 0, 0, 0

	var loadErr error
	c.baseline = snapshot.Snapshots{}
	if c.store != nil {
		baseline, err := c.store.Load(ctx)
		if err != nil {
			loadErr = fmt.Errorf("failed to load snapshots: %w", err)
			c.addError("snapshot", loadErr.Error(), "")
		} else {
			c.baseline = baseline
		}
	}

	c.startTime = time.Now()
	c.logger.Debug("run started", zap.String("file", c.FileName), zap.Int("nodes", len(c.nodes)))
	c.runNode(c.RootNode(), "")

	c.SnapshotDiff = snapshot.Diff(c.baseline, c.captured)
	c.logger.Debug("run finished",
		zap.String("file", c.FileName),
		zap.Int("tests", c.TestCount),
		zap.Int("passed", c.TestPassCount),
		zap.Int("snapshots_added", c.SnapshotDiff.Count(snapshot.Added)),
		zap.Int("snapshots_removed", c.SnapshotDiff.Count(snapshot.Removed)),
		zap.Int("snapshots_different", c.SnapshotDiff.Count(snapshot.Different)),
		zap.Duration("elapsed", time.Since(c.startTime)),
	)

	c.emit(func(r Reporter) { r.OnFinish(c) })

	if c.aborted != nil {
		return c.aborted
	}
	return loadErr
}

func (c *TestContext) emit(fn func(Reporter)) {
	for _, r := range c.reporters {
		fn(r)
	}
}

func (c *TestContext) addWarning(typ, message, stack string) {
	c.Warnings = append(c.Warnings, Problem{Type: typ, Message: message, StackTrace: stack})
	c.logger.Warn(message, zap.String("type", typ))
}

func (c *TestContext) addError(typ, message, stack string) {
	c.Errors = append(c.Errors, Problem{Type: typ, Message: message, StackTrace: stack})
	c.logger.Error(message, zap.String("type", typ))
}

func (c *TestContext) abort(err error, stack string) {
	if c.aborted != nil {
		return
	}
	c.aborted = err
	c.addError("usage", err.Error(), stack)
}

// runNode runs n and its descendants. blocked carries the message of a failed
// beforeAll hook of an ancestor; tests under it fail without running.
func (c *TestContext) runNode(n *TestNode, blocked string) {
	if n.IsGroup() {
		c.runGroup(n, blocked)
	} else {
		c.runTest(n, blocked)
	}
}

func (c *TestContext) runGroup(g *TestNode, blocked string) {
	start := time.Now()
	g.State = StateRunning
	g.Pass = true
	c.logger.Debug("enter group", zap.String("group", c.Path(g)))
	c.emit(func(r Reporter) { r.OnEnter(c, g) })
	c.emit(func(r Reporter) { r.OnGroupStart(c, g) })

	ranBeforeAll := false
	if blocked == "" && c.aborted == nil {
		ranBeforeAll = true
		if msg, failed := c.runGroupHooks(g, g.beforeAll); failed {
			blocked = fmt.Sprintf("beforeAll hook of %s failed: %s", c.describe(g), msg)
			g.Message = blocked
		}
	}

	for _, id := range g.Children {
		if c.aborted != nil {
			break
		}
		child := c.nodes[id]
		c.runNode(child, blocked)
		if !child.Pass {
			g.Pass = false
		}
	}

	if ranBeforeAll && blocked == "" && c.aborted == nil {
		if msg, failed := c.runGroupHooks(g, g.afterAll); failed {
			c.addError("afterAll", fmt.Sprintf("afterAll hook of %s failed: %s", c.describe(g), msg), "")
		}
	}

	for _, todo := range g.Todos {
		todo := todo
		c.emit(func(r Reporter) { r.OnTodo(c, g, todo) })
	}
	for _, log := range g.Logs {
		log := log
		c.emit(func(r Reporter) { r.OnLog(c, g, log) })
	}

	g.DeltaT = time.Since(start)
	g.State = StateFinished
	c.GroupCount++
	if g.Pass {
		c.GroupPassCount++
	}
	c.logger.Debug("exit group", zap.String("group", c.Path(g)), zap.Bool("pass", g.Pass), zap.Duration("elapsed", g.DeltaT))
	c.emit(func(r Reporter) { r.OnGroupFinish(c, g) })
	c.emit(func(r Reporter) { r.OnExit(c, g) })
}

// runGroupHooks runs group-level hooks against a scratch node and moves their
// logs onto g.
func (c *TestContext) runGroupHooks(g *TestNode, hooks []func(*T)) (string, bool) {
	if len(hooks) == 0 {
		return "", false
	}
	scratch := &TestNode{ID: g.ID, Kind: KindGroup, Name: g.Name, Parent: g.Parent, Pass: true}
	t := newT(c, scratch)
	failed := false
	for _, hook := range hooks {
		if t.run(hook) != outcomeOK {
			failed = true
			break
		}
	}
	g.Logs = append(g.Logs, scratch.Logs...)
	msg := scratch.Message
	if scratch.Reason != "" {
		msg += ": " + scratch.Reason
	}
	return msg, failed
}

func (c *TestContext) runTest(n *TestNode, blocked string) {
	start := time.Now()
	parent := c.Node(n.Parent)
	n.State = StateRunning
	n.Pass = true
	c.logger.Debug("enter test", zap.String("test", c.Path(n)))
	c.emit(func(r Reporter) { r.OnEnter(c, n) })
	c.emit(func(r Reporter) { r.OnTestStart(c, parent, n) })

	if blocked != "" {
		n.Pass = false
		n.Message = blocked
	} else {
		c.executeTest(n)
	}

	n.DeltaT = time.Since(start)
	n.State = StateFinished
	c.TestCount++
	if n.Pass {
		c.TestPassCount++
	}
	c.logger.Debug("exit test", zap.String("test", c.Path(n)), zap.Bool("pass", n.Pass), zap.Duration("elapsed", n.DeltaT))
	c.emit(func(r Reporter) { r.OnTestFinish(c, parent, n) })
	for _, log := range n.Logs {
		log := log
		c.emit(func(r Reporter) { r.OnLog(c, n, log) })
	}
	c.emit(func(r Reporter) { r.OnExit(c, n) })
}

func (c *TestContext) executeTest(n *TestNode) {
	t := newT(c, n)
	ancestors := c.groupChain(n)

	hookFailed := false
	for _, g := range ancestors {
		for _, hook := range g.beforeEach {
			if !hookFailed && t.run(hook) != outcomeOK {
				hookFailed = true
			}
		}
	}

	body := outcomeOK
	if !hookFailed && c.aborted == nil {
		body = t.run(n.body)
	}

	if body == outcomeFailed && n.Negated && !hookFailed {
		n.Pass = true
		n.clearFailure()
	} else if body == outcomeOK && n.Negated && !hookFailed {
		n.Pass = false
		n.Message = "expected test to throw"
		n.Reason = "test body completed without a failure"
	}

	if c.aborted != nil {
		return
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		for _, hook := range ancestors[i].afterEach {
			if t.run(hook) == outcomeAborted {
				return
			}
		}
	}
}

// groupChain returns the groups enclosing n, outermost first.
func (c *TestContext) groupChain(n *TestNode) []*TestNode {
	var chain []*TestNode
	for p := c.Node(n.Parent); p != nil; p = c.Node(p.Parent) {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// recordSnapshot stores a captured snapshot under key.
func (c *TestContext) recordSnapshot(key, serialized, stack string) {
	if _, dup := c.captured[key]; dup {
		c.addWarning("snapshot", fmt.Sprintf("duplicate snapshot key %q", key), stack)
	}
	c.captured[key] = serialized
}
