// Package chain manages the two causal links an error may carry after
// dispatch: the implicit context link (what was being handled when the
// error was produced) and the explicit cause link (declared chaining).
//
// Links are non-owning references used purely for diagnostic traversal —
// they never participate in matching or merging, and flattening a tree
// never follows them.
//
// The [Linker] interface is the host collaborator from the engine's
// point of view: a host whose error representation has native
// back-references can implement it directly. [SideTable] is the default
// implementation for hosts that do not, keyed by group node IDs and by
// value identity for comparable concrete errors.
package chain
