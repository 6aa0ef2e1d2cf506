package clause

import (
	"context"

	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/match"
)

// Body is the opaque handler callable supplied by the host. When the
// clause captures, matched is the bound aggregate (never empty, possibly
// holding a single concrete error); when it does not, matched is nil.
// The returned Signal tells the executor how the body finished.
//
// Bodies may suspend, spawn their own concurrent work, or have arbitrary
// side effects; the engine only awaits the Signal.
type Body func(ctx context.Context, matched *group.Group) Signal

// Clause is one typed handler entry of a block, in declaration order.
type Clause struct {
	// Name identifies the clause in logs, spans, and hook payloads.
	// Optional; the engine falls back to the clause index.
	Name string

	// Match is the clause's type-set predicate.
	Match match.Predicate

	// Capture binds the matched subset to the body's argument. When
	// false the body runs with a nil argument (match-and-discard).
	Capture bool

	// Body is the handler to run when the match is non-empty.
	Body Body
}

// New builds a capturing clause. Use [NewDiscard] for clauses that
// match without binding.
func New(name string, p match.Predicate, body Body) Clause {
	return Clause{Name: name, Match: p, Capture: true, Body: body}
}

// NewDiscard builds a clause that matches without binding: its body is
// invoked with a nil aggregate.
func NewDiscard(name string, p match.Predicate, body Body) Clause {
	return Clause{Name: name, Match: p, Capture: false, Body: body}
}
