package aspect

// Reporter consumes the lifecycle events of a TestContext. Reporters must not
// mutate the context or its nodes.
//
// For every node OnEnter is followed by OnGroupStart or OnTestStart, then the
// events of its children, then OnTestFinish (with the test's logs) or the
// group's todos, logs and OnGroupFinish, and finally OnExit. OnFinish fires
// once, after the snapshot diff is computed.
type Reporter interface {
	OnEnter(ctx *TestContext, node *TestNode)
	OnExit(ctx *TestContext, node *TestNode)
	OnGroupStart(ctx *TestContext, group *TestNode)
	OnGroupFinish(ctx *TestContext, group *TestNode)
	OnTestStart(ctx *TestContext, group, test *TestNode)
	OnTestFinish(ctx *TestContext, group, test *TestNode)
	OnTodo(ctx *TestContext, group *TestNode, todo string)
	OnLog(ctx *TestContext, node *TestNode, log ReflectedValue)
	OnFinish(ctx *TestContext)
}

// NopReporter ignores every event. Embed it to implement only some methods.
type NopReporter struct{}

func (NopReporter) OnEnter(*TestContext, *TestNode)                 {}
func (NopReporter) OnExit(*TestContext, *TestNode)                  {}
func (NopReporter) OnGroupStart(*TestContext, *TestNode)            {}
func (NopReporter) OnGroupFinish(*TestContext, *TestNode)           {}
func (NopReporter) OnTestStart(*TestContext, *TestNode, *TestNode)  {}
func (NopReporter) OnTestFinish(*TestContext, *TestNode, *TestNode) {}
func (NopReporter) OnTodo(*TestContext, *TestNode, string)          {}
func (NopReporter) OnLog(*TestContext, *TestNode, ReflectedValue)   {}
func (NopReporter) OnFinish(*TestContext)                           {}

var _ Reporter = NopReporter{}
