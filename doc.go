// Package exgroup provides a structured dispatch engine for aggregate
// errors. It matches the parts of an error tree against an ordered list
// of handler clauses, runs each matching clause exactly once over its
// whole matched subset, and merges whatever the clauses re-raise or
// newly raise back into a single propagating error.
//
// Exgroup is designed as a library, not a service. Import it, build an
// Engine, and describe handler blocks as ordinary Go functions.
//
// # Quick Start
//
//	eng, err := exgroup.New(
//	    exgroup.WithLogger(logger),
//	)
//	res, err := eng.Dispatch(ctx, raised,
//	    clause.New("timeouts", match.Type[*TimeoutError](), func(ctx context.Context, matched *group.Group) clause.Signal {
//	        return clause.Done()
//	    }),
//	)
//
// # Architecture
//
// The engine splits the incoming tree recursively: a clause's predicate
// is tested against every leaf, the matched leaves are rebuilt into a
// tree preserving the original nesting and order, and the remainder
// flows to the next clause. Causal links between an error raised inside
// a handler and the subset it was handling are recorded in a side
// table (the chain package) since Go error values carry no native
// back-references.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based,
// compile-time safe identifiers.
package exgroup
