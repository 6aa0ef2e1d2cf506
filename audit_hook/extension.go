package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/ext"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// Compile-time interface checks.
var (
	_ ext.Extension        = (*Extension)(nil)
	_ ext.BlockStarted     = (*Extension)(nil)
	_ ext.BlockHandled     = (*Extension)(nil)
	_ ext.BlockPropagated  = (*Extension)(nil)
	_ ext.BlockReturned    = (*Extension)(nil)
	_ ext.ClauseMatched    = (*Extension)(nil)
	_ ext.ClauseSuppressed = (*Extension)(nil)
	_ ext.ClauseReraised   = (*Extension)(nil)
	_ ext.ErrorRaised      = (*Extension)(nil)
	_ ext.ChainLinked      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so this package carries no backend dependency —
// callers inject their concrete audit client at wiring time.
type Recorder interface {
	// Record persists a fully-formed audit event.
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event. Callers
// provide a RecorderFunc adapter that bridges to their audit backend.
type AuditEvent struct {
	// What happened
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Category string `json:"category"`

	// Details
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Severity constants.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome constants.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Extension bridges exgroup lifecycle events to an audit trail backend.
// Each lifecycle hook emits a structured audit event through the [Recorder].
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements ext.Extension.
func (e *Extension) Name() string { return "audit-hook" }

// ── Block lifecycle hooks ───────────────────────────

// OnBlockStarted implements ext.BlockStarted.
func (e *Extension) OnBlockStarted(ctx context.Context, blk id.BlockID, incoming *group.Group) error {
	return e.record(ctx, ActionBlockStarted, SeverityInfo, OutcomeSuccess,
		ResourceBlock, blk.String(), CategoryBlock, nil,
		"errors", incoming.Count(),
		"summary", incoming.Summary(),
	)
}

// OnBlockHandled implements ext.BlockHandled.
func (e *Extension) OnBlockHandled(ctx context.Context, blk id.BlockID) error {
	return e.record(ctx, ActionBlockHandled, SeverityInfo, OutcomeSuccess,
		ResourceBlock, blk.String(), CategoryBlock, nil)
}

// OnBlockPropagated implements ext.BlockPropagated.
func (e *Extension) OnBlockPropagated(ctx context.Context, blk id.BlockID, propErr error) error {
	return e.record(ctx, ActionBlockPropagated, SeverityWarning, OutcomeFailure,
		ResourceBlock, blk.String(), CategoryBlock, propErr)
}

// OnBlockReturned implements ext.BlockReturned.
func (e *Extension) OnBlockReturned(ctx context.Context, blk id.BlockID) error {
	return e.record(ctx, ActionBlockReturned, SeverityInfo, OutcomeSuccess,
		ResourceBlock, blk.String(), CategoryBlock, nil)
}

// ── Clause lifecycle hooks ──────────────────────────

// OnClauseMatched implements ext.ClauseMatched.
func (e *Extension) OnClauseMatched(ctx context.Context, blk id.BlockID, index int, name string, matched *group.Group) error {
	return e.record(ctx, ActionClauseMatched, SeverityInfo, OutcomeSuccess,
		ResourceClause, blk.String(), CategoryClause, nil,
		"clause", name,
		"index", index,
		"matched", matched.Count(),
	)
}

// OnClauseSuppressed implements ext.ClauseSuppressed.
func (e *Extension) OnClauseSuppressed(ctx context.Context, blk id.BlockID, index int, name string) error {
	return e.record(ctx, ActionClauseSuppressed, SeverityInfo, OutcomeSuccess,
		ResourceClause, blk.String(), CategoryClause, nil,
		"clause", name,
		"index", index,
	)
}

// OnClauseReraised implements ext.ClauseReraised.
func (e *Extension) OnClauseReraised(ctx context.Context, blk id.BlockID, index int, name string, tree error) error {
	return e.record(ctx, ActionClauseReraised, SeverityWarning, OutcomeFailure,
		ResourceClause, blk.String(), CategoryClause, tree,
		"clause", name,
		"index", index,
	)
}

// OnErrorRaised implements ext.ErrorRaised.
func (e *Extension) OnErrorRaised(ctx context.Context, blk id.BlockID, index int, name string, raised error) error {
	return e.record(ctx, ActionErrorRaised, SeverityWarning, OutcomeFailure,
		ResourceClause, blk.String(), CategoryClause, raised,
		"clause", name,
		"index", index,
	)
}

// ── Chain hooks ─────────────────────────────────────

// OnChainLinked implements ext.ChainLinked.
func (e *Extension) OnChainLinked(ctx context.Context, linked error, link error, kind chain.LinkKind) error {
	return e.record(ctx, ActionChainLinked, SeverityInfo, OutcomeSuccess,
		ResourceError, "", CategoryChain, nil,
		"error", linked.Error(),
		"link", link.Error(),
		"kind", kind.String(),
	)
}

// ── Internal helpers ────────────────────────────────

// record builds and sends an audit event if the action is enabled.
// The kvPairs argument is a list of key-value pairs added to Metadata.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
