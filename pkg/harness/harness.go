// Package harness wires aspect to its host: it builds reporters, the snapshot
// store and the logger from configuration, runs test contexts, persists
// snapshots and bridges results into go test.
package harness

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AndreyAkinshin/aspect/internal/config"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
	"github.com/AndreyAkinshin/aspect/pkg/reporter"
)

// Harness holds everything a run needs besides the suite itself.
type Harness struct {
	Config *config.Config
	Out    *output.Writer
	Logger *zap.Logger
	Store  snapshot.Store
	Props  aspect.StringifyProps

	reporters []aspect.Reporter
	registry  prometheus.Registerer
	tracer    trace.TracerProvider
	logSink   io.Writer
}

// Option configures a Harness.
type Option func(*Harness)

// WithWriter sets the output sink for text reporters.
func WithWriter(w *output.Writer) Option {
	return func(h *Harness) { h.Out = w }
}

// WithLogger replaces the logger built from log.level.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) { h.Logger = logger }
}

// WithLogSink sets where the logger built from log.level writes. The default
// is the writer's err stream.
func WithLogSink(w io.Writer) Option {
	return func(h *Harness) { h.logSink = w }
}

// WithStore replaces the snapshot store selected by configuration.
func WithStore(store snapshot.Store) Option {
	return func(h *Harness) { h.Store = store }
}

// WithRegistry sets the Prometheus registerer used when metrics are enabled.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(h *Harness) { h.registry = reg }
}

// WithTracerProvider sets the provider used when tracing is enabled. The
// default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Harness) { h.tracer = tp }
}

// WithReporters appends reporters to those selected by configuration.
func WithReporters(reporters ...aspect.Reporter) Option {
	return func(h *Harness) { h.reporters = append(h.reporters, reporters...) }
}

// Load reads and validates the config file at path, prints its warnings and
// builds a Harness from it. An empty path uses defaults and the environment.
func Load(path string, opts ...Option) (*Harness, error) {
	cfg, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		return nil, &errors.AspectError{Kind: errors.KindConfig, Message: "invalid configuration", Cause: err}
	}
	h, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		h.Out.Warning("%s", w)
		h.Logger.Warn("config warning", zap.String("path", path), zap.String("warning", w))
	}
	return h, nil
}

// New builds a Harness from cfg, filling unset fields with defaults. A nil
// cfg uses defaults throughout.
func New(cfg *config.Config, opts ...Option) (*Harness, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	config.ApplyDefaults(cfg)
	h := &Harness{Config: cfg}
	for _, opt := range opts {
		opt(h)
	}

	if h.Out == nil {
		h.Out = output.New()
	}
	switch cfg.Color {
	case "always":
		h.Out.SetColor(true)
	case "never":
		h.Out.SetColor(false)
	}

	if h.Logger == nil {
		sink := h.logSink
		if sink == nil {
			sink = h.Out.Err()
		}
		logger, err := NewLogger(cfg.Log.Level, sink)
		if err != nil {
			return nil, &errors.AspectError{Kind: errors.KindConfig, Message: "invalid log level", Cause: err}
		}
		h.Logger = logger
	}

	if h.Store == nil {
		store, err := NewStore(cfg.Snapshots)
		if err != nil {
			return nil, &errors.AspectError{Kind: errors.KindConfig, Message: "invalid snapshot store", Cause: err}
		}
		h.Store = store
	}

	h.Props = reporter.DefaultProps()
	h.Props.Tab = cfg.Stringify.Indent
	h.Props.MaxExpandLevel = cfg.Stringify.MaxExpandLevel

	reporters, err := h.buildReporters()
	if err != nil {
		return nil, err
	}
	h.reporters = append(reporters, h.reporters...)
	return h, nil
}

func (h *Harness) buildReporters() ([]aspect.Reporter, error) {
	var reporters []aspect.Reporter
	switch h.Config.Reporter {
	case "summary":
		r := reporter.NewSummary(h.Out)
		r.Props = h.Props
		r.Table = h.Config.Summary.Table
		r.Logs = h.Config.Summary.LogsEnabled()
		reporters = append(reporters, r)
	default:
		r := reporter.NewVerbose(h.Out)
		r.Props = h.Props
		reporters = append(reporters, r)
	}

	if h.Config.Metrics.Enabled {
		reg := h.registry
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		m, err := reporter.NewMetrics(reg, h.Config.Metrics.Namespace)
		if err != nil {
			return nil, errors.Wrap(err, "failed to register metrics")
		}
		reporters = append(reporters, m)
	}

	if h.Config.Tracing.Enabled {
		tp := h.tracer
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		reporters = append(reporters, reporter.NewTracing(context.Background(), tp))
	}
	return reporters, nil
}

// Reporters returns the reporters every context from this harness receives.
func (h *Harness) Reporters() []aspect.Reporter {
	return h.reporters
}

// Options returns the context options carrying the harness wiring.
func (h *Harness) Options() []aspect.Option {
	return []aspect.Option{
		aspect.WithReporters(h.reporters...),
		aspect.WithSnapshotStore(h.Store),
		aspect.WithLogger(h.Logger),
		aspect.WithStringifyProps(h.Props),
	}
}

// NewContext creates a context for fileName wired to this harness.
func (h *Harness) NewContext(fileName string) *aspect.TestContext {
	return aspect.New(fileName, h.Options()...)
}

// Run runs tc and, when snapshots.update is set and the run was not aborted,
// replaces the stored baseline with the captured snapshots.
func (h *Harness) Run(ctx context.Context, tc *aspect.TestContext) error {
	runErr := tc.Run(ctx)
	if !h.Config.Snapshots.Update || tc.Err() != nil {
		return runErr
	}

	captured := tc.Captured()
	if err := h.Store.Save(ctx, captured); err != nil {
		h.Logger.Error("snapshot save failed", zap.String("file", tc.FileName), zap.Error(err))
		if runErr != nil {
			return runErr
		}
		return errors.Wrap(err, "failed to save snapshots")
	}
	h.Logger.Info("snapshots saved", zap.String("file", tc.FileName), zap.Int("count", len(captured)))
	return runErr
}

// NewStore returns the snapshot store cfg selects: a Redis hash, a file, or
// an empty in-memory baseline.
func NewStore(cfg *config.SnapshotsConfig) (snapshot.Store, error) {
	switch {
	case cfg == nil:
		return snapshot.NewMemoryStore(nil), nil
	case cfg.Redis != nil:
		return snapshot.NewRedisStore(snapshot.RedisOptions{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
			Key:  cfg.Redis.Key,
		}), nil
	case cfg.Path != "":
		return snapshot.NewFileStore(cfg.Path)
	default:
		return snapshot.NewMemoryStore(nil), nil
	}
}

// NewLogger builds a console logger at level writing to w.
func NewLogger(level string, w io.Writer) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
