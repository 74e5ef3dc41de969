// Package observability provides OpenTelemetry tracing and metrics for the
// sequence engine.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "orders.export")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	metrics.RecordRealization(ctx, "toList", "ok", duration)
package observability
