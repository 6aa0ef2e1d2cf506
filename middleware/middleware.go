// Package middleware provides composable middleware for clause
// execution. Middleware wraps the handler body synchronously and can
// observe or modify execution (recover from panics, log, add tracing and
// metrics) at the Signal level, before the executor derives an Outcome.
package middleware

import (
	"context"
	"strconv"

	"github.com/xraph/exgroup/clause"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// Info describes the clause execution being wrapped.
type Info struct {
	// Block is the dispatch invocation this clause belongs to.
	Block id.BlockID

	// Index is the clause's position in the block, in declaration order.
	Index int

	// Clause is the clause being executed.
	Clause *clause.Clause

	// Matched is the non-empty subset the clause matched.
	Matched *group.Group
}

// Name returns the clause's name, or its index rendered as "#n" when the
// host did not name it.
func (i *Info) Name() string {
	if i.Clause != nil && i.Clause.Name != "" {
		return i.Clause.Name
	}

	return "#" + strconv.Itoa(i.Index)
}

// Exec is the terminal function that runs the handler body.
type Exec func(ctx context.Context) clause.Signal

// Middleware wraps an Exec with cross-cutting logic. It receives the
// current context, the execution info, and the next stage to call.
// Middleware MUST call next to continue the chain (unless it synthesizes
// a Signal itself, as Recover does on panic).
type Middleware func(ctx context.Context, info *Info, next Exec) clause.Signal

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(recover, tracing, logging) executes as:
//
//	recover → tracing → logging → body
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, info *Info, next Exec) clause.Signal {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) clause.Signal {
				return mw(ctx, info, prev)
			}
		}

		return h(ctx)
	}
}
