package clause

// SignalKind enumerates the ways a handler body can finish.
type SignalKind int

const (
	// SignalDone: the body ran to completion. The matched subset is
	// considered fully handled and discarded.
	SignalDone SignalKind = iota

	// SignalReraise: bare re-raise of the error currently being handled.
	// The matched subset propagates with its structure unchanged.
	SignalReraise

	// SignalRaise: the body raised a value. Raising the bound aggregate
	// itself is the degraded captured-re-raise path; anything else is a
	// new error.
	SignalRaise

	// SignalReturn: bare early exit. The matched subset is suppressed
	// and the whole block exits immediately.
	SignalReturn
)

// String returns the kind's name for logs and metrics attributes.
func (k SignalKind) String() string {
	switch k {
	case SignalReraise:
		return "reraise"
	case SignalRaise:
		return "raise"
	case SignalReturn:
		return "return"
	default:
		return "done"
	}
}

// Signal is how a body reports its completion to the executor. Build one
// with [Done], [Reraise], [Raise], [RaiseFrom], or [Return].
//
// There is deliberately no constructor for a value-carrying early exit:
// that form is a structural violation rejected by the validate package
// before code generation, so the executor never observes it.
type Signal struct {
	kind  SignalKind
	err   error
	cause error
}

// Kind returns the signal's kind.
func (s Signal) Kind() SignalKind { return s.kind }

// Err returns the raised value for SignalRaise signals, else nil.
func (s Signal) Err() error { return s.err }

// Cause returns the explicitly chained cause, if RaiseFrom was used.
func (s Signal) Cause() error { return s.cause }

// Done reports that the body fell off the end with nothing to raise.
func Done() Signal { return Signal{kind: SignalDone} }

// Reraise reports a bare re-raise of the error currently being handled.
func Reraise() Signal { return Signal{kind: SignalReraise} }

// Raise reports that the body raised err as a brand-new top-level error.
// If err is the body's own bound aggregate, the executor treats it as a
// captured re-raise, which gains one level of nesting at merge time
// relative to a bare [Reraise].
func Raise(err error) Signal { return Signal{kind: SignalRaise, err: err} }

// RaiseFrom reports that the body raised err with explicit chaining:
// cause becomes err's cause link; the context link follows the normal
// rules.
func RaiseFrom(err, cause error) Signal {
	return Signal{kind: SignalRaise, err: err, cause: cause}
}

// Return reports a bare early exit: suppress the matched subset and
// leave the enclosing block right away.
func Return() Signal { return Signal{kind: SignalReturn} }
