package clause

// Kind enumerates per-clause execution outcomes.
type Kind int

const (
	// NoMatch: the predicate matched nothing; the body never ran.
	NoMatch Kind = iota

	// Suppressed: the body completed (or exited bare) and the matched
	// subset is discarded.
	Suppressed

	// Reraised: the matched subset (or its captured re-wrap) propagates.
	Reraised

	// NewError: the body produced a different error.
	NewError

	// EarlyReturn: the body requested an immediate exit of the whole
	// block, discarding everything still pending.
	EarlyReturn
)

// String returns the outcome kind's name.
func (k Kind) String() string {
	switch k {
	case Suppressed:
		return "suppressed"
	case Reraised:
		return "reraised"
	case NewError:
		return "new_error"
	case EarlyReturn:
		return "early_return"
	default:
		return "no_match"
	}
}

// Outcome is the executor's verdict for one clause. Tree carries the
// value to merge for Reraised and NewError and is nil otherwise. It is
// an error rather than a *group.Group because a new plain error joins
// the final merge as a leaf, not re-wrapped.
type Outcome struct {
	Kind Kind
	Tree error
}
