// Package body provides the orbital domain layer: a [Central] star,
// orbiting [Body] parameters as tensor leaves, and a [System] that
// maps functions over its bodies through the object stack.
//
// Every Body parameter is a [tensor.Array], so functions written
// against a single Body work unchanged under both of the stack's
// evaluation paths.
package body
