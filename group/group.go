package group

import (
	"fmt"
	"iter"
	"strings"

	"github.com/xraph/exgroup/id"
)

// Group is an immutable ordered aggregate of errors. Children are either
// concrete errors or nested *Group values. Group implements error.
type Group struct {
	id       id.GroupID
	summary  string
	children []error
}

// New builds a one-level tree over the given children. Children that are
// themselves groups are kept nested — construction never flattens. Nil
// children are skipped. The summary is display-only.
func New(summary string, errs ...error) *Group {
	children := make([]error, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		children = append(children, err)
	}

	return &Group{
		id:       id.NewGroupID(),
		summary:  summary,
		children: children,
	}
}

// Normalize returns err in tree form for matching: a *Group is returned
// as-is, any other error becomes a one-element aggregate. A nil error
// yields nil.
func Normalize(err error) *Group {
	if err == nil {
		return nil
	}
	if g, ok := err.(*Group); ok {
		return g
	}

	return New("", err)
}

// ID returns the node's unique identifier, used for log and span
// correlation and as the chain side-table key.
func (g *Group) ID() id.GroupID {
	if g == nil {
		return id.Nil
	}

	return g.id
}

// Summary returns the display-only summary this node was built with.
func (g *Group) Summary() string {
	if g == nil {
		return ""
	}

	return g.summary
}

// Children returns a copy of the node's direct children in insertion
// order.
func (g *Group) Children() []error {
	if g == nil {
		return nil
	}

	out := make([]error, len(g.children))
	copy(out, g.children)

	return out
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}

	return len(g.children)
}

// IsEmpty reports whether the tree contains no concrete errors. It is
// nil-receiver safe.
func (g *Group) IsEmpty() bool {
	if g == nil {
		return true
	}

	for _, child := range g.children {
		if sub, ok := child.(*Group); ok {
			if !sub.IsEmpty() {
				return false
			}

			continue
		}

		return false
	}

	return true
}

// Flatten returns a lazy depth-first traversal yielding every concrete
// (non-group) error in the tree in insertion order. The sequence is
// finite (trees are acyclic by construction) and restartable.
func (g *Group) Flatten() iter.Seq[error] {
	return func(yield func(error) bool) {
		g.flatten(yield)
	}
}

func (g *Group) flatten(yield func(error) bool) bool {
	if g == nil {
		return true
	}

	for _, child := range g.children {
		if sub, ok := child.(*Group); ok {
			if !sub.flatten(yield) {
				return false
			}

			continue
		}

		if !yield(child) {
			return false
		}
	}

	return true
}

// Count returns the total number of concrete errors in the tree,
// regardless of nesting depth.
func (g *Group) Count() int {
	n := 0
	for range g.Flatten() {
		n++
	}

	return n
}

// Unwrap returns the direct children, following the Go 1.20 multi-error
// convention so errors.Is and errors.As descend into the tree.
func (g *Group) Unwrap() []error {
	return g.Children()
}

// Error implements error. The summary, when present, prefixes the joined
// child messages.
func (g *Group) Error() string {
	if g == nil || len(g.children) == 0 {
		return "empty error group"
	}

	var b strings.Builder
	if g.summary != "" {
		fmt.Fprintf(&b, "%s (%d errors): ", g.summary, g.Count())
	}
	first := true
	for err := range g.Flatten() {
		if !first {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
		first = false
	}

	return b.String()
}
