package exgroup

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/clause"
	"github.com/xraph/exgroup/exec"
	"github.com/xraph/exgroup/ext"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
	"github.com/xraph/exgroup/match"
	mw "github.com/xraph/exgroup/middleware"
	"github.com/xraph/exgroup/observability"
	"github.com/xraph/exgroup/validate"
)

// instrumentationName identifies this library to OTel providers.
const instrumentationName = "github.com/xraph/exgroup"

// Engine dispatches aggregate error trees against ordered clause lists.
//
// Create one with New() and functional options. One Engine serves any
// number of blocks; each Dispatch call is independent and synchronous.
type Engine struct {
	config     Config
	logger     *slog.Logger
	linker     chain.Linker
	extensions *ext.Registry
	executor   *exec.Executor

	// Collected by options, wired together in New.
	userMws  []mw.Middleware
	userExts []ext.Extension

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.linker == nil {
		e.linker = chain.NewSideTable()
	}

	e.extensions = ext.NewRegistry(e.logger)
	e.extensions.Register(observability.NewMetricsExtension())
	for _, x := range e.userExts {
		e.extensions.Register(x)
	}

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware
	if e.tracerProvider != nil {
		tracingMw = mw.TracingWithTracer(e.tracerProvider.Tracer(instrumentationName))
	} else {
		tracingMw = mw.Tracing()
	}

	// Build metrics middleware (custom provider or global).
	var metricsMw mw.Middleware
	if e.meterProvider != nil {
		metricsMw = mw.MetricsWithMeter(e.meterProvider.Meter(instrumentationName))
	} else {
		metricsMw = mw.Metrics()
	}

	// Default middleware stack: recover → tracing → metrics → logging.
	allMws := make([]mw.Middleware, 0, 4+len(e.userMws))
	allMws = append(allMws,
		mw.Recover(e.logger),
		tracingMw,
		metricsMw,
		mw.Logging(e.logger),
	)
	allMws = append(allMws, e.userMws...)

	e.executor = exec.NewExecutor(e.linker, e.extensions, e.logger, allMws...)

	return e, nil
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Linker returns the engine's chain linker. Use it to read the context
// and cause links recorded for errors raised inside handler bodies.
func (e *Engine) Linker() chain.Linker { return e.linker }

// Extensions returns the engine's extension registry.
func (e *Engine) Extensions() *ext.Registry { return e.extensions }

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config { return e.config }

// CheckBlock validates a block descriptor against the engine's policy.
// A block with violations must be rejected by the host before any of
// its clauses reach Dispatch.
func (e *Engine) CheckBlock(b *validate.Block) []validate.Violation {
	if e.config.Policy != nil {
		return e.config.Policy.Check(b)
	}

	return validate.Check(b)
}

// Result is the final decision of one dispatched block.
type Result struct {
	// Block identifies this dispatch for log and span correlation.
	Block id.BlockID

	// Returned is set when a clause requested an early return. The
	// matched subset was suppressed and everything still pending in
	// the block was discarded.
	Returned bool

	// Propagated is the error the host must re-raise, or nil when the
	// block handled everything.
	Propagated error
}

// Handled reports whether the block fully handled the raised value with
// no early return and nothing to propagate.
func (r *Result) Handled() bool { return !r.Returned && r.Propagated == nil }

// Dispatch runs one handler block over a raised error.
//
// The raised value is normalized into tree form, each clause in order
// splits off the subset its predicate matches and runs exactly once
// over that whole subset, and the leftovers plus everything the clauses
// re-raised or newly raised merge into the final propagation decision:
//
//   - nothing left, nothing produced → handled, Propagated is nil
//   - leftovers only → the leftover tree propagates unchanged; if no
//     clause matched anything the original raised value propagates by
//     identity (a naked error stays naked)
//   - produced only → a single produced error propagates alone,
//     several become children of one new tree
//   - both → one new tree whose children are the leftover tree's
//     children in original order followed by the produced errors
//
// Dispatch itself never raises: the returned error reports misuse (nil
// raised value, clause with a nil predicate or body) found before any
// clause executed, and Result.Propagated carries the error flow.
func (e *Engine) Dispatch(ctx context.Context, raised error, clauses ...clause.Clause) (*Result, error) {
	if raised == nil {
		return nil, ErrNilRaised
	}
	for i := range clauses {
		if clauses[i].Match == nil {
			return nil, fmt.Errorf("%w: clause %d", ErrNilPredicate, i)
		}
		if clauses[i].Body == nil {
			return nil, fmt.Errorf("%w: clause %d", ErrNilBody, i)
		}
	}

	incoming, ok := raised.(*group.Group)
	if !ok {
		incoming = group.New(e.config.DefaultSummary, raised)
	}

	blk := id.NewBlockID()
	e.extensions.EmitBlockStarted(ctx, blk, incoming)

	e.logger.Debug("dispatching block",
		slog.String("block_id", blk.String()),
		slog.Int("clauses", len(clauses)),
		slog.Int("errors", incoming.Count()),
	)

	var (
		remaining = incoming
		produced  []error
		touched   bool
	)

	// Every clause is attempted even after remaining empties out; an
	// empty match short-circuits inside Execute with nothing
	// observable, so each clause still runs at most once per block.
	for i := range clauses {
		cl := &clauses[i]

		matched, rest := match.Split(remaining, cl.Match)
		if matched.IsEmpty() {
			continue
		}
		remaining = rest
		touched = true

		out := e.executor.Execute(ctx, blk, i, cl, matched)
		switch out.Kind {
		case clause.Reraised, clause.NewError:
			produced = append(produced, out.Tree)

		case clause.EarlyReturn:
			e.extensions.EmitBlockReturned(ctx, blk)

			return &Result{Block: blk, Returned: true}, nil
		}
	}

	prop := e.finalize(raised, incoming, remaining, produced, touched)
	if prop == nil {
		e.extensions.EmitBlockHandled(ctx, blk)
	} else {
		e.extensions.EmitBlockPropagated(ctx, blk, prop)
	}

	return &Result{Block: blk, Propagated: prop}, nil
}

// finalize computes the block's final propagation decision from the
// leftover tree and the errors the clauses produced.
func (e *Engine) finalize(raised error, incoming, remaining *group.Group, produced []error, touched bool) error {
	if !touched {
		if incoming.IsEmpty() {
			return nil
		}

		// No clause matched anything: the original value propagates by
		// identity, so a naked error stays naked and an aggregate
		// keeps its node identity.
		return raised
	}

	switch {
	case remaining.IsEmpty() && len(produced) == 0:
		return nil

	case remaining.IsEmpty() && len(produced) == 1:
		return produced[0]

	case remaining.IsEmpty():
		return group.New(incoming.Summary(), produced...)

	case len(produced) == 0:
		return remaining

	default:
		// Leftover children keep their original order ahead of the
		// produced errors.
		children := append(remaining.Children(), produced...)

		return group.New(incoming.Summary(), children...)
	}
}
