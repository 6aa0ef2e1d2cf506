// Package match partitions aggregate trees against clause predicates.
//
// A [Predicate] is the host-supplied type test for one clause — the
// analog of "does this error's type belong to the clause's type set".
// [Split] applies a predicate to a tree and produces independent matched
// and unmatched sub-trees, preserving nesting structure and insertion
// order in both. Split is pure: it never mutates its input and running
// it twice on the same tree yields structurally identical results.
package match
