// Package clause defines the vocabulary shared between the host's
// generated code and the dispatch engine: the [Clause] spec (predicate,
// capture flag, opaque body), the [Signal] a body reports back, and the
// [Outcome] the executor derives from it.
//
// A body runs at most once per block, with the whole matched subset as
// its single bound value — never once per concrete error. A clause whose
// predicate matches nothing is skipped entirely: the body is not invoked
// and the outcome is [NoMatch].
package clause
