package exgroup

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/ext"
	mw "github.com/xraph/exgroup/middleware"
	"github.com/xraph/exgroup/validate"
)

// Option configures an Engine.
type Option func(*Engine) error

// WithConfig replaces the engine's configuration wholesale.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		e.config = cfg
		return nil
	}
}

// WithDefaultSummary sets the summary attached to the aggregate tree
// built when a naked error enters dispatch.
func WithDefaultSummary(s string) Option {
	return func(e *Engine) error {
		e.config.DefaultSummary = s
		return nil
	}
}

// WithPolicy sets the structural rule policy used by CheckBlock.
func WithPolicy(p *validate.Policy) Option {
	return func(e *Engine) error {
		e.config.Policy = p
		return nil
	}
}

// WithLogger sets the structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// WithLinker sets the chain linker recording context and cause links.
// If not set, an in-memory side table is used.
func WithLinker(l chain.Linker) Option {
	return func(e *Engine) error {
		e.linker = l
		return nil
	}
}

// WithExtension registers an extension with the engine.
func WithExtension(x ext.Extension) Option {
	return func(e *Engine) error {
		e.userExts = append(e.userExts, x)
		return nil
	}
}

// WithMiddleware adds middleware to the engine's clause execution
// chain, after the default recover, tracing, metrics, and logging
// stages.
func WithMiddleware(m mw.Middleware) Option {
	return func(e *Engine) error {
		e.userMws = append(e.userMws, m)
		return nil
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the engine.
// When set, the tracing middleware uses this provider instead of the
// global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) error {
		e.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider sets a custom OTel MeterProvider for the engine.
// When set, the metrics middleware uses this provider instead of the
// global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) error {
		e.meterProvider = mp
		return nil
	}
}
