package ext

import (
	"context"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Block lifecycle hooks
// ──────────────────────────────────────────────────

// BlockStarted is called when a raised value enters dispatch, after
// normalization to tree form.
type BlockStarted interface {
	OnBlockStarted(ctx context.Context, blk id.BlockID, incoming *group.Group) error
}

// BlockHandled is called when a block finishes with nothing to
// propagate.
type BlockHandled interface {
	OnBlockHandled(ctx context.Context, blk id.BlockID) error
}

// BlockPropagated is called when a block's final decision is a
// propagating error (aggregate or naked).
type BlockPropagated interface {
	OnBlockPropagated(ctx context.Context, blk id.BlockID, err error) error
}

// BlockReturned is called when a clause body requested an immediate
// early exit, discarding everything still pending in the block.
type BlockReturned interface {
	OnBlockReturned(ctx context.Context, blk id.BlockID) error
}

// ──────────────────────────────────────────────────
// Clause lifecycle hooks
// ──────────────────────────────────────────────────

// ClauseMatched is called when a clause's predicate matched a non-empty
// subset, before the body runs.
type ClauseMatched interface {
	OnClauseMatched(ctx context.Context, blk id.BlockID, index int, name string, matched *group.Group) error
}

// ClauseSuppressed is called when a clause body completed and its
// matched subset was discarded.
type ClauseSuppressed interface {
	OnClauseSuppressed(ctx context.Context, blk id.BlockID, index int, name string) error
}

// ClauseReraised is called when a clause re-raised its matched subset,
// bare or captured.
type ClauseReraised interface {
	OnClauseReraised(ctx context.Context, blk id.BlockID, index int, name string, tree error) error
}

// ErrorRaised is called when a clause body produced a new error.
type ErrorRaised interface {
	OnErrorRaised(ctx context.Context, blk id.BlockID, index int, name string, err error) error
}

// ──────────────────────────────────────────────────
// Chain hooks
// ──────────────────────────────────────────────────

// ChainLinked is called after a causal link was recorded for err. Hosts
// whose error values carry native back-references use this hook to
// mirror the link for display integration.
type ChainLinked interface {
	OnChainLinked(ctx context.Context, err error, link error, kind chain.LinkKind) error
}
