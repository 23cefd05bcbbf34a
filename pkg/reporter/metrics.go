package reporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// MetricsReporter exports run results as Prometheus metrics.
type MetricsReporter struct {
	aspect.NopReporter

	tests     *prometheus.CounterVec
	groups    *prometheus.CounterVec
	runs      *prometheus.CounterVec
	todos     *prometheus.CounterVec
	snapshots *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors under namespace and registers them with
// reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*MetricsReporter, error) {
	if namespace == "" {
		namespace = "aspect"
	}
	m := &MetricsReporter{
		tests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tests_total",
			Help:      "Tests run, by file and result.",
		}, []string{"file", "result"}),
		groups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_total",
			Help:      "Groups run, by file and result.",
		}, []string{"file", "result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed test contexts, by file and result.",
		}, []string{"file", "result"}),
		todos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "todos_total",
			Help:      "Todos reported, by file.",
		}, []string{"file"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Snapshot diff entries, by file and kind.",
		}, []string{"file", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "test_duration_seconds",
			Help:      "Wall-clock duration of tests.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"file"}),
	}
	for _, c := range []prometheus.Collector{m.tests, m.groups, m.runs, m.todos, m.snapshots, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func result(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}

func (m *MetricsReporter) OnTestFinish(ctx *aspect.TestContext, _ *aspect.TestNode, test *aspect.TestNode) {
	m.tests.WithLabelValues(ctx.FileName, result(test.Pass)).Inc()
	m.duration.WithLabelValues(ctx.FileName).Observe(test.DeltaT.Seconds())
}

func (m *MetricsReporter) OnGroupFinish(ctx *aspect.TestContext, group *aspect.TestNode) {
	m.groups.WithLabelValues(ctx.FileName, result(group.Pass)).Inc()
}

func (m *MetricsReporter) OnTodo(ctx *aspect.TestContext, _ *aspect.TestNode, _ string) {
	m.todos.WithLabelValues(ctx.FileName).Inc()
}

func (m *MetricsReporter) OnFinish(ctx *aspect.TestContext) {
	m.runs.WithLabelValues(ctx.FileName, result(ctx.Pass())).Inc()
	if ctx.SnapshotDiff == nil {
		return
	}
	for _, kind := range []snapshot.DiffKind{snapshot.NoChange, snapshot.Added, snapshot.Removed, snapshot.Different} {
		if n := ctx.SnapshotDiff.Count(kind); n > 0 {
			m.snapshots.WithLabelValues(ctx.FileName, kind.String()).Add(float64(n))
		}
	}
}

var _ aspect.Reporter = (*MetricsReporter)(nil)
