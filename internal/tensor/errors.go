package tensor

import "errors"

// Domain errors for array operations.
var (
	// ErrBadShape indicates a shape inconsistent with the data or request.
	ErrBadShape = errors.New("tensor: bad shape")

	// ErrShapeMismatch indicates operands whose shapes cannot broadcast.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrBadAxis indicates an axis outside the valid range for an array.
	ErrBadAxis = errors.New("tensor: axis out of range")

	// ErrEmptyStack indicates a stack request with no input arrays.
	ErrEmptyStack = errors.New("tensor: nothing to stack")
)
