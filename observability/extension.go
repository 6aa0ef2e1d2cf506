package observability

import (
	"context"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/ext"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// Compile-time interface checks.
var (
	_ ext.Extension        = (*MetricsExtension)(nil)
	_ ext.BlockStarted     = (*MetricsExtension)(nil)
	_ ext.BlockHandled     = (*MetricsExtension)(nil)
	_ ext.BlockPropagated  = (*MetricsExtension)(nil)
	_ ext.BlockReturned    = (*MetricsExtension)(nil)
	_ ext.ClauseSuppressed = (*MetricsExtension)(nil)
	_ ext.ClauseReraised   = (*MetricsExtension)(nil)
	_ ext.ErrorRaised      = (*MetricsExtension)(nil)
	_ ext.ChainLinked      = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics via go-utils
// MetricFactory. Register it as an Engine extension to automatically
// track dispatch rates, handled and propagated outcomes, clause
// suppressions and re-raises, new errors, and chain links.
type MetricsExtension struct {
	BlockDispatched  gu.Counter
	BlockHandled     gu.Counter
	BlockPropagated  gu.Counter
	BlockReturned    gu.Counter
	ClauseSuppressed gu.Counter
	ClauseReraised   gu.Counter
	ErrorRaised      gu.Counter
	ChainLinked      gu.Counter
}

// NewMetricsExtension creates a MetricsExtension using a default metrics collector.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithFactory(gu.NewMetricsCollector("exgroup/observability"))
}

// NewMetricsExtensionWithFactory creates a MetricsExtension with the
// provided MetricFactory.
func NewMetricsExtensionWithFactory(factory gu.MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		BlockDispatched:  factory.Counter("exgroup.block.dispatched"),
		BlockHandled:     factory.Counter("exgroup.block.handled"),
		BlockPropagated:  factory.Counter("exgroup.block.propagated"),
		BlockReturned:    factory.Counter("exgroup.block.returned"),
		ClauseSuppressed: factory.Counter("exgroup.clause.suppressed"),
		ClauseReraised:   factory.Counter("exgroup.clause.reraised"),
		ErrorRaised:      factory.Counter("exgroup.error.raised"),
		ChainLinked:      factory.Counter("exgroup.chain.linked"),
	}
}

// Name implements ext.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// ── Block lifecycle hooks ───────────────────────────

// OnBlockStarted implements ext.BlockStarted.
func (m *MetricsExtension) OnBlockStarted(_ context.Context, _ id.BlockID, _ *group.Group) error {
	m.BlockDispatched.Inc()
	return nil
}

// OnBlockHandled implements ext.BlockHandled.
func (m *MetricsExtension) OnBlockHandled(_ context.Context, _ id.BlockID) error {
	m.BlockHandled.Inc()
	return nil
}

// OnBlockPropagated implements ext.BlockPropagated.
func (m *MetricsExtension) OnBlockPropagated(_ context.Context, _ id.BlockID, _ error) error {
	m.BlockPropagated.Inc()
	return nil
}

// OnBlockReturned implements ext.BlockReturned.
func (m *MetricsExtension) OnBlockReturned(_ context.Context, _ id.BlockID) error {
	m.BlockReturned.Inc()
	return nil
}

// ── Clause lifecycle hooks ──────────────────────────

// OnClauseSuppressed implements ext.ClauseSuppressed.
func (m *MetricsExtension) OnClauseSuppressed(_ context.Context, _ id.BlockID, _ int, _ string) error {
	m.ClauseSuppressed.Inc()
	return nil
}

// OnClauseReraised implements ext.ClauseReraised.
func (m *MetricsExtension) OnClauseReraised(_ context.Context, _ id.BlockID, _ int, _ string, _ error) error {
	m.ClauseReraised.Inc()
	return nil
}

// OnErrorRaised implements ext.ErrorRaised.
func (m *MetricsExtension) OnErrorRaised(_ context.Context, _ id.BlockID, _ int, _ string, _ error) error {
	m.ErrorRaised.Inc()
	return nil
}

// ── Chain hooks ─────────────────────────────────────

// OnChainLinked implements ext.ChainLinked.
func (m *MetricsExtension) OnChainLinked(_ context.Context, _ error, _ error, _ chain.LinkKind) error {
	m.ChainLinked.Inc()
	return nil
}
