package match

import (
	"errors"

	"github.com/xraph/exgroup/group"
)

// Predicate reports whether a concrete error belongs to a clause's type
// set. It is only ever applied to concrete (non-group) errors; nested
// groups are always recursed into, never tested directly.
type Predicate func(err error) bool

// Type matches errors assignable to T via errors.As. This is the Go
// analog of a subclass check: the leaf's own unwrap chain participates,
// chain links (context/cause) never do.
func Type[T error]() Predicate {
	return func(err error) bool {
		var target T

		return errors.As(err, &target)
	}
}

// Is matches errors for which errors.Is(err, target) holds.
func Is(target error) Predicate {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// AnyOf combines predicates into the union of their type sets, mirroring
// a clause that names several types.
func AnyOf(preds ...Predicate) Predicate {
	return func(err error) bool {
		for _, p := range preds {
			if p(err) {
				return true
			}
		}

		return false
	}
}

// Split partitions tree against p into (matched, unmatched). Structure
// is preserved independently in both outputs: a nested group whose
// recursive split is non-empty reappears, rebuilt, at its original
// depth. Sub-trees emptied by the split are omitted entirely — a group
// never contains an empty-group child. Either return value is nil when
// its side holds no concrete errors.
//
// A naked concrete error must be normalized to a one-element aggregate
// (see group.Normalize) before splitting, so clauses match naked errors
// exactly as if they were one-element groups.
func Split(tree *group.Group, p Predicate) (matched, unmatched *group.Group) {
	if tree.IsEmpty() {
		return nil, nil
	}

	var m, u []error
	for _, child := range tree.Children() {
		if sub, ok := child.(*group.Group); ok {
			sm, su := Split(sub, p)
			if !sm.IsEmpty() {
				m = append(m, sm)
			}
			if !su.IsEmpty() {
				u = append(u, su)
			}

			continue
		}

		if p(child) {
			m = append(m, child)
		} else {
			u = append(u, child)
		}
	}

	if len(m) > 0 {
		matched = group.New(tree.Summary(), m...)
	}
	if len(u) > 0 {
		unmatched = group.New(tree.Summary(), u...)
	}

	return matched, unmatched
}
