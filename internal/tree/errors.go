package tree

import "errors"

var (
	// ErrKind indicates an operation applied to the wrong node variant.
	ErrKind = errors.New("tree: wrong node kind")

	// ErrLeafCount indicates an unflatten with the wrong number of leaves.
	ErrLeafCount = errors.New("tree: leaf count mismatch")
)
