package audithook

// Audit event actions. Each constant corresponds to one ext lifecycle hook
// and becomes the Action field of the audit event.
const (
	ActionBlockStarted     = "block.started"
	ActionBlockHandled     = "block.handled"
	ActionBlockPropagated  = "block.propagated"
	ActionBlockReturned    = "block.returned"
	ActionClauseMatched    = "clause.matched"
	ActionClauseSuppressed = "clause.suppressed"
	ActionClauseReraised   = "clause.reraised"
	ActionErrorRaised      = "error.raised"
	ActionChainLinked      = "chain.linked"
)

// Audit event categories group related actions.
const (
	CategoryBlock  = "exgroup.block"
	CategoryClause = "exgroup.clause"
	CategoryChain  = "exgroup.chain"
)

// Resource types used as the Resource field in audit events.
const (
	ResourceBlock  = "block"
	ResourceClause = "clause"
	ResourceError  = "error"
)

// AllActions returns every action this extension can emit.
func AllActions() []string {
	return []string{
		ActionBlockStarted,
		ActionBlockHandled,
		ActionBlockPropagated,
		ActionBlockReturned,
		ActionClauseMatched,
		ActionClauseSuppressed,
		ActionClauseReraised,
		ActionErrorRaised,
		ActionChainLinked,
	}
}
