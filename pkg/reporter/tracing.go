package reporter

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// TracerName is the instrumentation name of spans created by TracingReporter.
const TracerName = "github.com/AndreyAkinshin/aspect"

type spanKey struct {
	ctx  *aspect.TestContext
	node aspect.NodeID
}

type openSpan struct {
	ctx  context.Context
	span trace.Span
}

// TracingReporter emits one OpenTelemetry span per node. The root group span
// is named after the file; nested spans follow the tree.
type TracingReporter struct {
	aspect.NopReporter

	parent context.Context
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[spanKey]openSpan
}

// NewTracing returns a reporter creating spans from tp as children of parent.
func NewTracing(parent context.Context, tp trace.TracerProvider) *TracingReporter {
	if parent == nil {
		parent = context.Background()
	}
	return &TracingReporter{
		parent: parent,
		tracer: tp.Tracer(TracerName),
		spans:  make(map[spanKey]openSpan),
	}
}

func (r *TracingReporter) OnEnter(ctx *aspect.TestContext, node *aspect.TestNode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := r.parent
	if p, ok := r.spans[spanKey{ctx, node.Parent}]; ok {
		parent = p.ctx
	}
	name := node.Name
	if node.IsRoot() {
		name = ctx.FileName
	}
	spanCtx, span := r.tracer.Start(parent, name, trace.WithAttributes(
		attribute.String("aspect.file", ctx.FileName),
		attribute.String("aspect.kind", node.Kind.String()),
		attribute.String("aspect.path", ctx.Path(node)),
	))
	r.spans[spanKey{ctx, node.ID}] = openSpan{ctx: spanCtx, span: span}
}

func (r *TracingReporter) OnLog(ctx *aspect.TestContext, node *aspect.TestNode, log aspect.ReflectedValue) {
	if s, ok := r.lookup(ctx, node); ok {
		s.span.AddEvent("log", trace.WithAttributes(attribute.String("aspect.value", log.String())))
	}
}

func (r *TracingReporter) OnTodo(ctx *aspect.TestContext, group *aspect.TestNode, todo string) {
	if s, ok := r.lookup(ctx, group); ok {
		s.span.AddEvent("todo", trace.WithAttributes(attribute.String("aspect.todo", todo)))
	}
}

func (r *TracingReporter) OnExit(ctx *aspect.TestContext, node *aspect.TestNode) {
	r.mu.Lock()
	key := spanKey{ctx, node.ID}
	s, ok := r.spans[key]
	delete(r.spans, key)
	r.mu.Unlock()
	if !ok {
		return
	}

	s.span.SetAttributes(
		attribute.Bool("aspect.pass", node.Pass),
		attribute.Bool("aspect.negated", node.Negated),
		attribute.Int64("aspect.duration_ms", node.DeltaT.Milliseconds()),
	)
	if node.IsRoot() {
		s.span.SetAttributes(
			attribute.Int("aspect.tests", ctx.TestCount),
			attribute.Int("aspect.tests_passed", ctx.TestPassCount),
		)
	}
	if node.Pass {
		s.span.SetStatus(codes.Ok, "")
	} else {
		s.span.SetStatus(codes.Error, node.Message)
	}
	s.span.End()
}

func (r *TracingReporter) lookup(ctx *aspect.TestContext, node *aspect.TestNode) (openSpan, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spans[spanKey{ctx, node.ID}]
	return s, ok
}

var _ aspect.Reporter = (*TracingReporter)(nil)
