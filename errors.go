package exgroup

import "errors"

var (
	// Dispatch argument errors.
	ErrNilRaised = errors.New("exgroup: dispatch of a nil error")

	// Clause construction errors.
	ErrNilPredicate = errors.New("exgroup: clause has a nil predicate")
	ErrNilBody      = errors.New("exgroup: clause has a nil body")

	// Block errors.
	ErrInvalidBlock = errors.New("exgroup: block failed validation")
)
