package ext

import (
	"context"
	"log/slog"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type blockStartedEntry struct {
	name string
	hook BlockStarted
}

type blockHandledEntry struct {
	name string
	hook BlockHandled
}

type blockPropagatedEntry struct {
	name string
	hook BlockPropagated
}

type blockReturnedEntry struct {
	name string
	hook BlockReturned
}

type clauseMatchedEntry struct {
	name string
	hook ClauseMatched
}

type clauseSuppressedEntry struct {
	name string
	hook ClauseSuppressed
}

type clauseReraisedEntry struct {
	name string
	hook ClauseReraised
}

type errorRaisedEntry struct {
	name string
	hook ErrorRaised
}

type chainLinkedEntry struct {
	name string
	hook ChainLinked
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	blockStarted     []blockStartedEntry
	blockHandled     []blockHandledEntry
	blockPropagated  []blockPropagatedEntry
	blockReturned    []blockReturnedEntry
	clauseMatched    []clauseMatchedEntry
	clauseSuppressed []clauseSuppressedEntry
	clauseReraised   []clauseReraisedEntry
	errorRaised      []errorRaisedEntry
	chainLinked      []chainLinkedEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(BlockStarted); ok {
		r.blockStarted = append(r.blockStarted, blockStartedEntry{name, h})
	}
	if h, ok := e.(BlockHandled); ok {
		r.blockHandled = append(r.blockHandled, blockHandledEntry{name, h})
	}
	if h, ok := e.(BlockPropagated); ok {
		r.blockPropagated = append(r.blockPropagated, blockPropagatedEntry{name, h})
	}
	if h, ok := e.(BlockReturned); ok {
		r.blockReturned = append(r.blockReturned, blockReturnedEntry{name, h})
	}
	if h, ok := e.(ClauseMatched); ok {
		r.clauseMatched = append(r.clauseMatched, clauseMatchedEntry{name, h})
	}
	if h, ok := e.(ClauseSuppressed); ok {
		r.clauseSuppressed = append(r.clauseSuppressed, clauseSuppressedEntry{name, h})
	}
	if h, ok := e.(ClauseReraised); ok {
		r.clauseReraised = append(r.clauseReraised, clauseReraisedEntry{name, h})
	}
	if h, ok := e.(ErrorRaised); ok {
		r.errorRaised = append(r.errorRaised, errorRaisedEntry{name, h})
	}
	if h, ok := e.(ChainLinked); ok {
		r.chainLinked = append(r.chainLinked, chainLinkedEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// ──────────────────────────────────────────────────
// Block event emitters
// ──────────────────────────────────────────────────

// EmitBlockStarted notifies all extensions that implement BlockStarted.
func (r *Registry) EmitBlockStarted(ctx context.Context, blk id.BlockID, incoming *group.Group) {
	for _, e := range r.blockStarted {
		if err := e.hook.OnBlockStarted(ctx, blk, incoming); err != nil {
			r.logHookError("OnBlockStarted", e.name, err)
		}
	}
}

// EmitBlockHandled notifies all extensions that implement BlockHandled.
func (r *Registry) EmitBlockHandled(ctx context.Context, blk id.BlockID) {
	for _, e := range r.blockHandled {
		if err := e.hook.OnBlockHandled(ctx, blk); err != nil {
			r.logHookError("OnBlockHandled", e.name, err)
		}
	}
}

// EmitBlockPropagated notifies all extensions that implement BlockPropagated.
func (r *Registry) EmitBlockPropagated(ctx context.Context, blk id.BlockID, propErr error) {
	for _, e := range r.blockPropagated {
		if err := e.hook.OnBlockPropagated(ctx, blk, propErr); err != nil {
			r.logHookError("OnBlockPropagated", e.name, err)
		}
	}
}

// EmitBlockReturned notifies all extensions that implement BlockReturned.
func (r *Registry) EmitBlockReturned(ctx context.Context, blk id.BlockID) {
	for _, e := range r.blockReturned {
		if err := e.hook.OnBlockReturned(ctx, blk); err != nil {
			r.logHookError("OnBlockReturned", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Clause event emitters
// ──────────────────────────────────────────────────

// EmitClauseMatched notifies all extensions that implement ClauseMatched.
func (r *Registry) EmitClauseMatched(ctx context.Context, blk id.BlockID, index int, name string, matched *group.Group) {
	for _, e := range r.clauseMatched {
		if err := e.hook.OnClauseMatched(ctx, blk, index, name, matched); err != nil {
			r.logHookError("OnClauseMatched", e.name, err)
		}
	}
}

// EmitClauseSuppressed notifies all extensions that implement ClauseSuppressed.
func (r *Registry) EmitClauseSuppressed(ctx context.Context, blk id.BlockID, index int, name string) {
	for _, e := range r.clauseSuppressed {
		if err := e.hook.OnClauseSuppressed(ctx, blk, index, name); err != nil {
			r.logHookError("OnClauseSuppressed", e.name, err)
		}
	}
}

// EmitClauseReraised notifies all extensions that implement ClauseReraised.
func (r *Registry) EmitClauseReraised(ctx context.Context, blk id.BlockID, index int, name string, tree error) {
	for _, e := range r.clauseReraised {
		if err := e.hook.OnClauseReraised(ctx, blk, index, name, tree); err != nil {
			r.logHookError("OnClauseReraised", e.name, err)
		}
	}
}

// EmitErrorRaised notifies all extensions that implement ErrorRaised.
func (r *Registry) EmitErrorRaised(ctx context.Context, blk id.BlockID, index int, name string, raised error) {
	for _, e := range r.errorRaised {
		if err := e.hook.OnErrorRaised(ctx, blk, index, name, raised); err != nil {
			r.logHookError("OnErrorRaised", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Chain event emitters
// ──────────────────────────────────────────────────

// EmitChainLinked notifies all extensions that implement ChainLinked.
func (r *Registry) EmitChainLinked(ctx context.Context, linked error, link error, kind chain.LinkKind) {
	for _, e := range r.chainLinked {
		if err := e.hook.OnChainLinked(ctx, linked, link, kind); err != nil {
			r.logHookError("OnChainLinked", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block dispatch.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
