package validate

import (
	"fmt"

	"github.com/xraph/exgroup/id"
)

// Style distinguishes the two clause forms a host front end can parse.
type Style int

const (
	// StyleSingle is the ordinary single-match clause form.
	StyleSingle Style = iota

	// StyleMulti is the multi-match (group-aware) clause form dispatched
	// by this engine.
	StyleMulti
)

// String returns the style's name.
func (s Style) String() string {
	if s == StyleMulti {
		return "multi"
	}

	return "single"
}

// TransferKind classifies a non-local control transfer found inside a
// handler body.
type TransferKind int

const (
	// TransferBreak is a break targeting a loop enclosing the block.
	TransferBreak TransferKind = iota

	// TransferContinue is a continue targeting a loop enclosing the block.
	TransferContinue

	// TransferReturn is an early return out of the enclosing function.
	TransferReturn
)

// String returns the transfer kind's name.
func (k TransferKind) String() string {
	switch k {
	case TransferBreak:
		return "break"
	case TransferContinue:
		return "continue"
	default:
		return "return"
	}
}

// Transfer is one non-local control transfer the front end found in a
// handler body.
type Transfer struct {
	Kind TransferKind

	// HasValue is set when the transfer carries a value. Only
	// meaningful for TransferReturn.
	HasValue bool
}

// Clause describes one clause of a block for validation purposes.
type Clause struct {
	// ID correlates violations back to the front end's clause record.
	// Optional.
	ID id.ClauseID

	// Name is the clause's display name, if any.
	Name string

	// Style is the clause form the front end parsed.
	Style Style

	// Transfers lists every non-local control transfer in the body.
	Transfers []Transfer
}

// Block describes one handler block for validation purposes.
type Block struct {
	Clauses []Clause
}

// Rule names one structural-violation rule.
type Rule string

const (
	// RuleMixedStyles rejects blocks mixing multi-match and single-match
	// clause styles.
	RuleMixedStyles Rule = "mixed-clause-styles"

	// RuleLoopExit rejects break/continue transfers that leave a handler
	// body.
	RuleLoopExit Rule = "loop-exit-in-handler"

	// RuleValueReturn rejects early returns that carry a value.
	RuleValueReturn Rule = "value-carrying-return"
)

// Violation is one structural violation found in a block. It is fatal to
// compilation or loading; a block with violations must never reach
// dispatch.
type Violation struct {
	Rule     Rule
	Clause   int
	ClauseID id.ClauseID
	Message  string
}

// Error implements error so violations compose with the host's
// diagnostics plumbing.
func (v Violation) Error() string {
	return fmt.Sprintf("validate: clause %d: %s (%s)", v.Clause, v.Message, v.Rule)
}

// Check validates a block descriptor against all rules and returns every
// violation found, in clause order.
func Check(b *Block) []Violation {
	return checkRules(b, nil)
}

func checkRules(b *Block, disabled map[Rule]bool) []Violation {
	if b == nil || len(b.Clauses) == 0 {
		return nil
	}

	var out []Violation
	add := func(v Violation) {
		if !disabled[v.Rule] {
			out = append(out, v)
		}
	}

	base := b.Clauses[0].Style
	for i, cl := range b.Clauses {
		if cl.Style != base {
			add(Violation{
				Rule:     RuleMixedStyles,
				Clause:   i,
				ClauseID: cl.ID,
				Message:  fmt.Sprintf("clause style %s mixed with %s in one block", cl.Style, base),
			})
		}

		for _, tr := range cl.Transfers {
			switch tr.Kind {
			case TransferBreak, TransferContinue:
				add(Violation{
					Rule:     RuleLoopExit,
					Clause:   i,
					ClauseID: cl.ID,
					Message:  fmt.Sprintf("%s out of a handler body is not allowed", tr.Kind),
				})
			case TransferReturn:
				if tr.HasValue {
					add(Violation{
						Rule:     RuleValueReturn,
						Clause:   i,
						ClauseID: cl.ID,
						Message:  "early return carrying a value is not allowed in a handler body",
					})
				}
			}
		}
	}

	return out
}
