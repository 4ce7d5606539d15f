// Package vmap provides the batched-execution primitive: it turns a
// function over single structured values into one over batches.
//
//   - [Axis]: per-argument batch-axis designation, with [None] as the
//     broadcast sentinel
//   - [Spec]: scalar-or-per-position axis specification
//   - [Vectorize]: one dispatch that fans the batch out over a worker
//     pool and reassembles results by index
//   - [Select], [Collect]: the indexing and validate-then-stack pieces,
//     also used directly by the object stack's fallback loop
//
// Evaluations are independent and side-effect-free; batch order affects
// only the ordering of stacked output leaves, never their values.
package vmap
