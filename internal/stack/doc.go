// Package stack provides the structured-object stack: an immutable,
// ordered collection of tree-convertible objects and a dispatcher that
// maps functions over them, batched when possible.
//
//   - [New]: probes object structures once and eagerly builds the
//     stacked value when they all match
//   - [Stack.Vmap]: returns a callable that either issues one batched
//     [vmap.Vectorize] dispatch (uniform stack) or loops per object,
//     validating and stacking the results (mixed stack)
//
// Both paths honor the same axis-mapping contract, so callers never
// branch on which strategy ran. The trade is explicit: the stacked
// value duplicates every leaf to buy the single-dispatch fast path.
//
// Axis-spec length errors and [ErrEmptyStack] surface before any
// evaluation; a [vmap.StructureError] surfaces as soon as an object's
// result structure diverges, with no partial result.
package stack
