// Package tree provides the structured values the evaluation core maps
// over: arbitrarily nested composites of [tensor.Array] leaves.
//
// A [Node] is one of a closed set of variants (leaf, list, or record)
// walked by explicit traversal:
//
//   - [Flatten]: tree to depth-first leaf list plus a [Structure]
//   - [Structure.Unflatten]: leaf list back to a tree
//   - [Map]: leaf-wise transform preserving structure
//
// [Structure] descriptors compare layouts independent of leaf values,
// which is how the object stack decides between its batched and looped
// evaluation strategies.
package tree
