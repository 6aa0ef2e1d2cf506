package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/exgroup/clause"
)

// tracerName is the instrumentation scope name for exgroup tracing.
const tracerName = "github.com/xraph/exgroup"

// Tracing returns middleware that wraps clause execution in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: exgroup.block.id, exgroup.clause.index,
// exgroup.clause.name, exgroup.matched.count. When the body raises, the
// span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)

	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided
// tracer. This variant allows injecting a specific TracerProvider for
// testing or when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, info *Info, next Exec) clause.Signal {
		ctx, span := tracer.Start(ctx, "exgroup.clause.execute",
			trace.WithAttributes(
				attribute.String("exgroup.block.id", info.Block.String()),
				attribute.Int("exgroup.clause.index", info.Index),
				attribute.String("exgroup.clause.name", info.Name()),
				attribute.Int("exgroup.matched.count", info.Matched.Count()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		sig := next(ctx)

		if sig.Kind() == clause.SignalRaise && sig.Err() != nil {
			span.RecordError(sig.Err())
			span.SetStatus(codes.Error, sig.Err().Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return sig
	}
}
