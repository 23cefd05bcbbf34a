package aspect

import "github.com/AndreyAkinshin/aspect/internal/errors"

// Group builds one group of the tree. Groups nest freely; tests are leaves.
// The tree must be complete before TestContext.Run is called.
type Group struct {
	ctx *TestContext
	id  NodeID
}

// ID returns the node of this group.
func (g *Group) ID() NodeID {
	return g.id
}

func (g *Group) node() *TestNode {
	if g.ctx.started {
		panic(errors.Usage("", "cannot change the tree after the run started"))
	}
	return g.ctx.nodes[g.id]
}

// Describe adds a nested group and calls fn to define its contents.
func (g *Group) Describe(name string, fn func(g *Group)) {
	n := g.ctx.addNode(KindGroup, name, g.id)
	fn(&Group{ctx: g.ctx, id: n.ID})
}

// Test adds a test.
func (g *Group) Test(name string, body func(t *T)) {
	n := g.ctx.addNode(KindTest, name, g.id)
	n.body = body
}

// Throws adds a test that passes only if its body fails, either through a
// failed assertion or a panic.
func (g *Group) Throws(name string, body func(t *T)) {
	n := g.ctx.addNode(KindTest, name, g.id)
	n.body = body
	n.Negated = true
}

// Todo records a test that still has to be written.
func (g *Group) Todo(description string) {
	n := g.node()
	n.Todos = append(n.Todos, description)
}

// BeforeAll registers a hook run once before the group's children. If it
// fails, every test in the group fails without running.
func (g *Group) BeforeAll(fn func(t *T)) {
	n := g.node()
	n.beforeAll = append(n.beforeAll, fn)
}

// AfterAll registers a hook run once after the group's children. A failure is
// recorded as a context error.
func (g *Group) AfterAll(fn func(t *T)) {
	n := g.node()
	n.afterAll = append(n.afterAll, fn)
}

// BeforeEach registers a hook run before every test in the group, including
// tests of nested groups. A failure fails the test.
func (g *Group) BeforeEach(fn func(t *T)) {
	n := g.node()
	n.beforeEach = append(n.beforeEach, fn)
}

// AfterEach registers a hook run after every test in the group, including
// tests of nested groups. A failure fails the test.
func (g *Group) AfterEach(fn func(t *T)) {
	n := g.node()
	n.afterEach = append(n.afterEach, fn)
}
