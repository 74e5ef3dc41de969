package seq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/lazyseq/config"
	"github.com/kbukum/lazyseq/errors"
)

func quietConfig(name string) *config.Config {
	cfg := &config.Config{}
	cfg.Name = name
	cfg.Logging.Output = "discard"
	return cfg
}

func TestDefaults(t *testing.T) {
	t.Cleanup(Reset)
	Configure(WithStableSort(false))
	Reset()
	st := current()
	assert.True(t, st.stableSort)
	assert.True(t, st.tracing)
	assert.Nil(t, st.log)
	assert.Nil(t, st.metrics)
	assert.NotNil(t, st.logger())
}

func TestConfigure_KeepsUnchangedSettings(t *testing.T) {
	t.Cleanup(Reset)
	Configure(WithStableSort(false))
	Configure()
	assert.False(t, current().stableSort)
}

func TestApply(t *testing.T) {
	t.Cleanup(Reset)
	cfg := quietConfig("lazyseq")
	cfg.Sort.Mode = config.SortUnstable

	require.NoError(t, Apply(cfg))
	st := current()
	assert.False(t, st.stableSort)
	assert.NotNil(t, st.log)
	assert.Nil(t, st.metrics)
	assert.Equal(t, []int{1, 2, 3}, list[int](t, Sort(Of(2, 3, 1))))
}

func TestApply_Metrics(t *testing.T) {
	t.Cleanup(Reset)
	cfg := quietConfig("lazyseq")
	cfg.Observability.Metrics = true

	require.NoError(t, Apply(cfg))
	assert.NotNil(t, current().metrics)
	assert.True(t, current().stableSort)
}

func TestApply_InvalidConfig(t *testing.T) {
	t.Cleanup(Reset)
	before := current()

	cfg := quietConfig("lazyseq")
	cfg.Sort.Mode = "random"
	err := Apply(cfg)
	requireCode(t, err, errors.ErrCodeInvalidConfig)
	assert.Same(t, before, current())

	err = Apply(quietConfig(""))
	requireCode(t, err, errors.ErrCodeInvalidConfig)
	assert.Same(t, before, current())
}

func TestApply_Tracing(t *testing.T) {
	rec := useRecorder(t)
	t.Cleanup(Reset)
	traced := Traced(context.Background(), Of(1, 2), "switch")

	require.NoError(t, Apply(quietConfig("lazyseq")))
	assert.False(t, current().tracing)
	assert.Equal(t, []int{1, 2}, list[int](t, traced))
	assert.Empty(t, rec.Started(), "tracing is off unless the settings enable it")

	cfg := quietConfig("lazyseq")
	cfg.Observability.Tracing = true
	require.NoError(t, Apply(cfg))
	assert.True(t, current().tracing)
	assert.Equal(t, []int{1, 2}, list[int](t, traced))
	assert.Len(t, rec.Ended(), 1)
}

func TestWithTracing_Off(t *testing.T) {
	rec := useRecorder(t)
	t.Cleanup(Reset)
	Configure(WithTracing(false))

	_, err := ToList[int](Traced(context.Background(), Create[int](Source[int]{}), "off"))
	requireCode(t, err, errors.ErrCodeNotIterable)
	assert.Empty(t, rec.Started())
}

// keepGlobals restores the otel providers replaced by Init.
func keepGlobals(t *testing.T) {
	t.Helper()
	tp, mp, prop := otel.GetTracerProvider(), otel.GetMeterProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		otel.SetTextMapPropagator(prop)
		Reset()
	})
}

func stop(t *testing.T, shutdown Shutdown) {
	t.Helper()
	require.NotNil(t, shutdown)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// Nothing listens on the collector endpoint; only the call matters.
	_ = shutdown(ctx)
}

func TestInit_NothingEnabled(t *testing.T) {
	keepGlobals(t)
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), quietConfig("lazyseq"))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.False(t, current().tracing)
	assert.Nil(t, current().metrics)
}

func TestInit_Tracing(t *testing.T) {
	keepGlobals(t)
	cfg := quietConfig("lazyseq")
	cfg.Observability.Tracing = true
	cfg.Observability.Insecure = true
	cfg.Observability.SampleRate = 0.5

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { stop(t, shutdown) })

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.True(t, current().tracing)
	assert.Nil(t, current().metrics)
}

func TestInit_Metrics(t *testing.T) {
	keepGlobals(t)
	cfg := quietConfig("lazyseq")
	cfg.Observability.Metrics = true
	cfg.Observability.Interval = time.Hour

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { stop(t, shutdown) })

	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
	assert.NotNil(t, current().metrics)
	assert.False(t, current().tracing)
}

func TestInit_InvalidConfig(t *testing.T) {
	keepGlobals(t)
	before := current()
	cfg := quietConfig("lazyseq")
	cfg.Observability.Tracing = true
	cfg.Observability.Endpoint = "not a host"

	shutdown, err := Init(context.Background(), cfg)
	requireCode(t, err, errors.ErrCodeInvalidConfig)
	assert.NoError(t, shutdown(context.Background()))
	assert.Same(t, before, current())
}
