// Package validate rejects structurally invalid handler blocks before
// any of them can reach dispatch.
//
// The host's static-checking phase builds a [Block] descriptor for each
// multi-match block it compiles — clause styles plus the non-local
// control transfers found in each handler body — and calls [Check]. A
// non-empty result is fatal to compilation or loading: dispatch assumes
// validated input and never re-checks at runtime.
//
// Three rules exist, matching the structural-violation taxonomy:
//
//   - [RuleMixedStyles]: multi-match and single-match clauses in one block
//   - [RuleLoopExit]: a break/continue targeting a loop outside the body
//   - [RuleValueReturn]: an early return that carries a value
//
// A bare early return is legal: it suppresses the matched subset and
// exits the block.
//
// [Policy] stages rules on and off per host (loaded from YAML), for
// front ends that phase enforcement in gradually.
package validate
