package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/exgroup/clause"
)

// meterName is the instrumentation scope name for exgroup metrics.
const meterName = "github.com/xraph/exgroup"

// Metrics returns middleware that records per-clause execution metrics
// using the global OTel MeterProvider. If no MeterProvider is
// configured, noop instruments are used and this middleware becomes a
// pass-through.
//
// Instruments:
//   - exgroup.clause.duration (Float64Histogram): body execution time in
//     seconds, with attributes: clause, signal
//   - exgroup.clause.executions (Int64Counter): total body executions,
//     with attributes: clause, signal
func Metrics() Middleware {
	meter := otel.Meter(meterName)

	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"exgroup.clause.duration",
		metric.WithDescription("Duration of clause body execution in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	executions, eErr := meter.Int64Counter(
		"exgroup.clause.executions",
		metric.WithDescription("Total number of clause body executions"),
		metric.WithUnit("{execution}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, info *Info, next Exec) clause.Signal {
		start := time.Now()
		sig := next(ctx)
		elapsed := time.Since(start).Seconds()

		attrs := metric.WithAttributes(
			attribute.String("clause", info.Name()),
			attribute.String("signal", sig.Kind().String()),
		)
		duration.Record(ctx, elapsed, attrs)
		executions.Add(ctx, 1, attrs)

		return sig
	}
}
