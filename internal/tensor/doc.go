// Package tensor provides dense float64 arrays for the evaluation core.
//
// The package defines the numeric leaf type used throughout exostack:
//
//   - [Array]: shaped, row-major float64 data with value semantics
//   - elementwise arithmetic with trailing-axis broadcasting
//   - [Stack], [Array.Index], [Array.MoveAxis]: the axis plumbing the
//     batched evaluator is built on
//
// # Broadcasting
//
// Binary operations align shapes from the last axis backwards; a
// dimension of size 1 (or a missing leading dimension) stretches to
// match the other operand:
//
//	t := tensor.Vector(0.0, 0.5, 1.0) // shape [3]
//	r := tensor.Scalar(0.1)           // shape []
//	q, _ := t.Div(r)                  // shape [3]
//
// # Thread Safety
//
// Arrays are immutable after construction; any Array may be shared
// between goroutines freely.
package tensor
