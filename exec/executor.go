// Package exec provides the clause execution engine — an Executor that
// invokes a handler body through middleware, translates the body's
// Signal into an Outcome, and wires causal chain links into any error
// the body produces.
package exec

import (
	"context"
	"log/slog"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/clause"
	"github.com/xraph/exgroup/ext"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
	"github.com/xraph/exgroup/middleware"
)

// Executor runs a single clause against its matched subset through the
// middleware chain, then derives the clause Outcome and records chain
// links. One Executor serves all blocks of an Engine.
type Executor struct {
	linker     chain.Linker
	extensions *ext.Registry
	mw         middleware.Middleware
	logger     *slog.Logger
}

// NewExecutor creates an Executor with the given dependencies.
func NewExecutor(
	linker chain.Linker,
	extensions *ext.Registry,
	logger *slog.Logger,
	mws ...middleware.Middleware,
) *Executor {
	return &Executor{
		linker:     linker,
		extensions: extensions,
		mw:         middleware.Chain(mws...),
		logger:     logger,
	}
}

// Execute runs one clause against matched.
//
// An empty matched subset short-circuits to NoMatch: the body is not
// invoked, no middleware runs, and nothing is observable. Otherwise the
// body runs exactly once, with the whole subset as its single bound
// value when the clause captures, and the returned Signal decides the
// Outcome:
//
//   - Done → Suppressed
//   - Reraise → Reraised carrying matched, structure unchanged
//   - Raise(bound aggregate) → Reraised carrying a fresh wrapper around
//     the bound value (the degraded captured-re-raise path; one extra
//     nesting level at merge time, no context link)
//   - Raise/RaiseFrom(other) → NewError; the new error's context link is
//     set to exactly the matched subset unless an inner frame already
//     set one, and RaiseFrom's cause link is recorded unconditionally
//   - Return → EarlyReturn; the subset is suppressed and the engine
//     exits the block
func (e *Executor) Execute(ctx context.Context, blk id.BlockID, index int, cl *clause.Clause, matched *group.Group) clause.Outcome {
	if matched.IsEmpty() {
		return clause.Outcome{Kind: clause.NoMatch}
	}

	info := &middleware.Info{
		Block:   blk,
		Index:   index,
		Clause:  cl,
		Matched: matched,
	}
	name := info.Name()

	e.extensions.EmitClauseMatched(ctx, blk, index, name, matched)

	var bound *group.Group
	if cl.Capture {
		bound = matched
	}

	// The terminal stage that calls the handler body.
	terminal := func(ctx context.Context) clause.Signal {
		return cl.Body(ctx, bound)
	}

	sig := e.mw(ctx, info, terminal)

	switch sig.Kind() {
	case clause.SignalReraise:
		e.extensions.EmitClauseReraised(ctx, blk, index, name, matched)

		return clause.Outcome{Kind: clause.Reraised, Tree: matched}

	case clause.SignalRaise:
		return e.applyRaise(ctx, blk, index, name, matched, bound, sig)

	case clause.SignalReturn:
		e.extensions.EmitClauseSuppressed(ctx, blk, index, name)

		return clause.Outcome{Kind: clause.EarlyReturn}

	default: // SignalDone
		e.extensions.EmitClauseSuppressed(ctx, blk, index, name)

		return clause.Outcome{Kind: clause.Suppressed}
	}
}

// applyRaise handles SignalRaise: distinguishing the captured-re-raise
// path from a genuinely new error, and wiring chain links for the
// latter. Collapsing the two re-raise paths would be a correctness bug:
// the captured path must gain one wrapper so the merge nests it deeper.
func (e *Executor) applyRaise(ctx context.Context, blk id.BlockID, index int, name string, matched, bound *group.Group, sig clause.Signal) clause.Outcome {
	raised := sig.Err()
	if raised == nil {
		e.logger.Warn("clause raised a nil error, treating as completion",
			slog.String("block_id", blk.String()),
			slog.String("clause", name),
		)
		e.extensions.EmitClauseSuppressed(ctx, blk, index, name)

		return clause.Outcome{Kind: clause.Suppressed}
	}

	if g, ok := raised.(*group.Group); ok && bound != nil && g == bound {
		// Re-raise of the bound variable itself: raise it as a
		// brand-new top-level error. No context link — the value is
		// the error being handled, not a consequence of it.
		tree := group.New(bound.Summary(), bound)
		e.extensions.EmitClauseReraised(ctx, blk, index, name, tree)

		return clause.Outcome{Kind: clause.Reraised, Tree: tree}
	}

	if cause := sig.Cause(); cause != nil {
		if e.linker.LinkCause(raised, cause) {
			e.extensions.EmitChainLinked(ctx, raised, cause, chain.KindCause)
		}
	}
	if e.linker.LinkContext(raised, matched) {
		e.extensions.EmitChainLinked(ctx, raised, matched, chain.KindContext)
	}

	e.extensions.EmitErrorRaised(ctx, blk, index, name, raised)

	return clause.Outcome{Kind: clause.NewError, Tree: raised}
}
