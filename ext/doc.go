// Package ext defines the extension system for exgroup.
//
// Extensions are notified of dispatch lifecycle events and can react to
// them — recording metrics, mirroring chain links into a host's own
// error representation, writing audit logs, etc. Each lifecycle hook is
// a separate interface so extensions opt in only to the events they
// care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnBlockPropagated(ctx context.Context, blk id.BlockID, err error) error {
//	    log.Printf("block %s propagated: %v", blk, err)
//	    return nil
//	}
//
// # Block Lifecycle Hooks
//
//   - [BlockStarted] — a raised value entered dispatch
//   - [BlockHandled] — every error was suppressed; nothing propagates
//   - [BlockPropagated] — the block's final decision was a propagating error
//   - [BlockReturned] — a clause requested an immediate early exit
//
// # Clause Lifecycle Hooks
//
//   - [ClauseMatched] — a clause's predicate matched a non-empty subset
//   - [ClauseSuppressed] — a clause body completed, discarding its subset
//   - [ClauseReraised] — a clause re-raised its subset
//   - [ErrorRaised] — a clause body produced a new error
//
// # Chain Hooks
//
//   - [ChainLinked] — a context or cause link was recorded; hosts with a
//     native error chain mirror links into their display integration here
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
