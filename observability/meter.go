package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		logger.FieldService, config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricRealizationTotal       = "realization.total"
	MetricRealizationDuration    = "realization.duration"
	MetricMaterializationElement = "materialization.elements"
	MetricTraversalTotal         = "traversal.total"
	MetricTraversalDuration      = "traversal.duration"
	MetricTraversalElements      = "traversal.elements"
	MetricErrorTotal             = "error.total"
)

// Metrics holds the instruments of the sequence engine.
type Metrics struct {
	realizationTotal    metric.Int64Counter
	realizationDuration metric.Float64Histogram
	materialized        metric.Int64Histogram
	traversalTotal      metric.Int64Counter
	traversalDuration   metric.Float64Histogram
	traversalElements   metric.Int64Histogram
	errorTotal          metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	realizationTotal, err := meter.Int64Counter(MetricRealizationTotal,
		metric.WithDescription("Total number of sequence realizations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRealizationTotal, err)
	}

	realizationDuration, err := meter.Float64Histogram(MetricRealizationDuration,
		metric.WithDescription("Duration of sequence realizations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRealizationDuration, err)
	}

	materialized, err := meter.Int64Histogram(MetricMaterializationElement,
		metric.WithDescription("Number of elements buffered by materializing operators"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricMaterializationElement, err)
	}

	traversalTotal, err := meter.Int64Counter(MetricTraversalTotal,
		metric.WithDescription("Total number of traced traversals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricTraversalTotal, err)
	}

	traversalDuration, err := meter.Float64Histogram(MetricTraversalDuration,
		metric.WithDescription("Duration of traced traversals in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricTraversalDuration, err)
	}

	traversalElements, err := meter.Int64Histogram(MetricTraversalElements,
		metric.WithDescription("Number of elements yielded by traced traversals"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricTraversalElements, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		realizationTotal:    realizationTotal,
		realizationDuration: realizationDuration,
		materialized:        materialized,
		traversalTotal:      traversalTotal,
		traversalDuration:   traversalDuration,
		traversalElements:   traversalElements,
		errorTotal:          errorTotal,
	}, nil
}

// RecordRealization records one call of a realization function.
func (m *Metrics) RecordRealization(ctx context.Context, operation, status string, duration time.Duration) {
	m.realizationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrStatus, status),
	))
	m.realizationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrOperation, operation),
	))
}

// RecordMaterialization records how many elements an operator buffered.
func (m *Metrics) RecordMaterialization(ctx context.Context, operator string, count int) {
	m.materialized.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String(AttrOperator, operator),
	))
}

// RecordTraversal records a completed traced traversal.
func (m *Metrics) RecordTraversal(ctx context.Context, name, status string, count int, duration time.Duration) {
	m.traversalTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrTraversalName, name),
		attribute.String(AttrStatus, status),
	))
	m.traversalDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrTraversalName, name),
	))
	m.traversalElements.Record(ctx, int64(count), metric.WithAttributes(
		attribute.String(AttrTraversalName, name),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
