// Package group defines the aggregate error tree at the heart of exgroup.
//
// A [Group] represents zero or more concrete errors raised together. Its
// children are ordered and each child is either a concrete error or a
// nested *Group — the structure is a tree, not a flat list, and nesting
// is semantically significant: the engine's split and merge steps
// preserve it.
//
// # Immutability
//
// Groups are immutable once constructed. [New] copies the child slice it
// is given and only ever wraps previously fully-built values, so trees
// are acyclic by construction and safe for concurrent readers without
// locking. A handler that wants to raise something new builds a new tree
// or a plain error; it never mutates an in-flight one.
//
// # Empty groups
//
// A group with zero children is the canonical "empty" aggregate. It is a
// legal value for bookkeeping but the engine never propagates one and a
// group never contains an empty group as a child. [Group.IsEmpty] is
// nil-receiver safe, so a nil *Group can also stand in for "no errors".
package group
