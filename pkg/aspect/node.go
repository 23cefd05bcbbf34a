package aspect

import (
	"time"

	"github.com/AndreyAkinshin/aspect/internal/reflected"
)

// ReflectedValue is a captured, displayable value used for diagnostics and logs.
type ReflectedValue = reflected.Value

// StringifyProps control how a ReflectedValue is rendered.
type StringifyProps = reflected.Props

// NodeID indexes a TestNode in its context's arena.
type NodeID int

// NoNode is the parent of the root node.
const NoNode NodeID = -1

// NodeKind distinguishes groups from tests.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindTest
)

func (k NodeKind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "test"
}

// NodeState is the lifecycle state of a TestNode.
type NodeState int

const (
	StateDefined NodeState = iota
	StateRunning
	StateFinished
)

func (s NodeState) String() string {
	switch s {
	case StateDefined:
		return "defined"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TestNode is a group or a test in the tree. Nodes refer to each other by
// NodeID; the owning TestContext resolves them.
//
// Exported fields are written by the runner and are read-only for reporters.
type TestNode struct {
	ID       NodeID
	Kind     NodeKind
	Name     string
	Parent   NodeID
	Children []NodeID
	State    NodeState

	Pass bool
	// Negated marks a test that is expected to fail.
	Negated bool
	Message string
	Reason  string

	Actual     *ReflectedValue
	Expected   *ReflectedValue
	StackTrace string

	Logs   []ReflectedValue
	Todos  []string
	DeltaT time.Duration

	body       func(*T)
	beforeAll  []func(*T)
	afterAll   []func(*T)
	beforeEach []func(*T)
	afterEach  []func(*T)
}

// IsGroup reports whether n is a group.
func (n *TestNode) IsGroup() bool {
	return n.Kind == KindGroup
}

// IsRoot reports whether n is the root of its tree.
func (n *TestNode) IsRoot() bool {
	return n.Parent == NoNode
}

// clearFailure drops the diagnostics of a failure that turned out to be
// expected.
func (n *TestNode) clearFailure() {
	n.Message = ""
	n.Reason = ""
	n.Actual = nil
	n.Expected = nil
	n.StackTrace = ""
}
