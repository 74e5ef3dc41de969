package seq

import (
	"context"
	stderrors "errors"
	"sync/atomic"

	"github.com/kbukum/lazyseq/config"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/observability"
)

// component is the logger and metrics component name of the engine.
const component = "seq"

type settings struct {
	stableSort bool
	tracing    bool
	log        *logger.Logger
	metrics    *observability.Metrics
}

var active atomic.Pointer[settings]

func init() {
	active.Store(defaultSettings())
}

func defaultSettings() *settings {
	return &settings{stableSort: true, tracing: true}
}

func current() *settings { return active.Load() }

func (s *settings) logger() *logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.Get(component)
}

// Option adjusts engine settings.
type Option func(*settings)

// WithStableSort selects a stable (default) or unstable sort for the sort family.
func WithStableSort(stable bool) Option {
	return func(s *settings) { s.stableSort = stable }
}

// WithTracing switches the spans of Traced on (default) or off.
func WithTracing(enabled bool) Option {
	return func(s *settings) { s.tracing = enabled }
}

// WithLogger routes engine logs to l.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMetrics records realizations and materializations on m. Nil disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// Configure replaces the engine settings with the current ones adjusted by
// opts. Settings are read at the moment they are needed, so a traversal in
// progress picks up the change on its next materialization.
func Configure(opts ...Option) {
	next := *current()
	for _, opt := range opts {
		opt(&next)
	}
	active.Store(&next)
}

// Reset restores the default settings.
func Reset() {
	active.Store(defaultSettings())
}

// Apply installs settings loaded through the config package.
func Apply(cfg *config.Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []Option{
		WithStableSort(cfg.Sort.IsStable()),
		WithTracing(cfg.Observability.Tracing),
		WithLogger(logger.New(&cfg.Logging, cfg.Name).WithComponent(component)),
	}
	if cfg.Observability.Metrics {
		m, err := observability.NewMetrics(observability.Meter(cfg.Observability.ServiceName))
		if err != nil {
			return err
		}
		opts = append(opts, WithMetrics(m))
	} else {
		opts = append(opts, WithMetrics(nil))
	}
	Configure(opts...)
	return nil
}

// Shutdown flushes and stops the exporters started by Init.
type Shutdown func(ctx context.Context) error

// Init starts the OTLP tracer and meter providers the settings enable,
// installs them globally and then applies cfg. The returned Shutdown stops
// the providers; it is never nil.
func Init(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return noShutdown, err
	}

	var stops []Shutdown
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return stderrors.Join(errs...)
	}

	o := cfg.Observability
	if o.Tracing {
		tp, err := observability.InitTracer(ctx, cfg.TracerConfig())
		if err != nil {
			return noShutdown, err
		}
		stops = append(stops, tp.Shutdown)
	}
	if o.Metrics {
		mp, err := observability.InitMeter(ctx, cfg.MeterConfig())
		if err != nil {
			_ = shutdown(ctx)
			return noShutdown, err
		}
		stops = append(stops, mp.Shutdown)
	}

	if err := Apply(cfg); err != nil {
		_ = shutdown(ctx)
		return noShutdown, err
	}
	current().logger().Info("engine initialized", logger.Fields(
		logger.FieldService, o.ServiceName,
		"metrics", o.Metrics,
		"tracing", o.Tracing,
	))
	return shutdown, nil
}

func noShutdown(context.Context) error { return nil }
