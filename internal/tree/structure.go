package tree

import (
	"fmt"
	"strings"

	"github.com/san-kum/exostack/internal/tensor"
)

// Structure is a value-independent descriptor of a tree's composite
// layout: which nodes are leaves, lists, and records, and in what
// order. Two trees have matching structure iff their descriptors are
// Equal; leaf shapes and values play no part in the comparison.
type Structure struct {
	repr     string
	leaves   int
	skeleton *Node
}

// Flatten decomposes a tree into its leaves, in depth-first order, plus
// the Structure needed to rebuild it.
func Flatten(n *Node) ([]*tensor.Array, Structure) {
	var leaves []*tensor.Array
	var b strings.Builder
	skeleton := flattenInto(n, &leaves, &b)
	return leaves, Structure{repr: b.String(), leaves: len(leaves), skeleton: skeleton}
}

// StructureOf returns the descriptor alone, discarding the leaves.
func StructureOf(n *Node) Structure {
	_, s := Flatten(n)
	return s
}

func flattenInto(n *Node, leaves *[]*tensor.Array, b *strings.Builder) *Node {
	switch n.kind {
	case LeafKind:
		*leaves = append(*leaves, n.leaf)
		b.WriteByte('*')
		return &Node{kind: LeafKind}
	case ListKind:
		b.WriteByte('(')
		items := make([]*Node, len(n.items))
		for i, c := range n.items {
			if i > 0 {
				b.WriteByte(',')
			}
			items[i] = flattenInto(c, leaves, b)
		}
		b.WriteByte(')')
		return &Node{kind: ListKind, items: items}
	case RecordKind:
		b.WriteByte('{')
		fields := make([]Field, len(n.fields))
		for i, f := range n.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Key)
			b.WriteByte(':')
			fields[i] = Field{Key: f.Key, Value: flattenInto(f.Value, leaves, b)}
		}
		b.WriteByte('}')
		return &Node{kind: RecordKind, fields: fields}
	default:
		panic(fmt.Sprintf("tree: unknown node kind %d", n.kind))
	}
}

func (s Structure) NumLeaves() int { return s.leaves }

// Equal compares layouts node by node. Record keys are compared as
// values, so keys containing repr punctuation cannot alias a
// different layout.
func (s Structure) Equal(o Structure) bool {
	return s.leaves == o.leaves && sameSkeleton(s.skeleton, o.skeleton)
}

func sameSkeleton(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case LeafKind:
		return true
	case ListKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !sameSkeleton(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key {
				return false
			}
			if !sameSkeleton(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	}
}

func (s Structure) String() string { return s.repr }

// Unflatten rebuilds a tree from leaves in the order Flatten produced
// them. The leaf count must match exactly.
func (s Structure) Unflatten(leaves []*tensor.Array) (*Node, error) {
	if len(leaves) != s.leaves {
		return nil, fmt.Errorf("%w: structure %s needs %d leaves, got %d",
			ErrLeafCount, s.repr, s.leaves, len(leaves))
	}
	rest := leaves
	n := rebuild(s.skeleton, &rest)
	return n, nil
}

func rebuild(skeleton *Node, leaves *[]*tensor.Array) *Node {
	switch skeleton.kind {
	case LeafKind:
		a := (*leaves)[0]
		*leaves = (*leaves)[1:]
		return Leaf(a)
	case ListKind:
		items := make([]*Node, len(skeleton.items))
		for i, c := range skeleton.items {
			items[i] = rebuild(c, leaves)
		}
		return List(items...)
	default:
		fields := make([]Field, len(skeleton.fields))
		for i, f := range skeleton.fields {
			fields[i] = Field{Key: f.Key, Value: rebuild(f.Value, leaves)}
		}
		return Record(fields...)
	}
}
