package stack

import "errors"

var (
	// ErrEmptyStack indicates a mapped call on a stack with no
	// objects; the result structure cannot be known without at least
	// one evaluation.
	ErrEmptyStack = errors.New("stack: cannot map over an empty stack")

	// ErrUnmappedDisagree indicates objects producing different values
	// at an output leaf the caller declared unmapped (reported only
	// under the VerifyUnmapped option).
	ErrUnmappedDisagree = errors.New("stack: objects disagree on unmapped output leaf")
)
