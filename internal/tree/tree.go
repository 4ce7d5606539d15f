package tree

import (
	"fmt"

	"github.com/san-kum/exostack/internal/tensor"
)

type Kind int

const (
	LeafKind Kind = iota
	ListKind
	RecordKind
)

// Node is a structured numeric value: a leaf array, an ordered list of
// children, or an ordered record of named children. The closed set of
// variants keeps traversal explicit; there is no reflection anywhere in
// the evaluation core.
type Node struct {
	kind   Kind
	leaf   *tensor.Array
	items  []*Node
	fields []Field
}

// Field is one named child of a record node. Field order is part of a
// record's structure: records with the same keys in different order do
// not match.
type Field struct {
	Key   string
	Value *Node
}

func Leaf(a *tensor.Array) *Node {
	return &Node{kind: LeafKind, leaf: a}
}

func Scalar(v float64) *Node {
	return Leaf(tensor.Scalar(v))
}

func List(items ...*Node) *Node {
	return &Node{kind: ListKind, items: items}
}

func Record(fields ...Field) *Node {
	return &Node{kind: RecordKind, fields: fields}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsLeaf() bool { return n.kind == LeafKind }

// Array returns the leaf payload; nil for non-leaf nodes.
func (n *Node) Array() *tensor.Array { return n.leaf }

func (n *Node) Items() []*Node { return n.items }

func (n *Node) Fields() []Field { return n.fields }

func (n *Node) Get(key string) (*Node, bool) {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Float unwraps a rank-0 leaf.
func (n *Node) Float() (float64, error) {
	if n.kind != LeafKind {
		return 0, fmt.Errorf("%w: Float on %v node", ErrKind, n.kind)
	}
	return n.leaf.Float()
}

// Map applies f to every leaf, building a new tree with the same
// structure.
func Map(n *Node, f func(*tensor.Array) (*tensor.Array, error)) (*Node, error) {
	switch n.kind {
	case LeafKind:
		a, err := f(n.leaf)
		if err != nil {
			return nil, err
		}
		return Leaf(a), nil
	case ListKind:
		items := make([]*Node, len(n.items))
		for i, c := range n.items {
			m, err := Map(c, f)
			if err != nil {
				return nil, err
			}
			items[i] = m
		}
		return List(items...), nil
	case RecordKind:
		fields := make([]Field, len(n.fields))
		for i, fl := range n.fields {
			m, err := Map(fl.Value, f)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Key: fl.Key, Value: m}
		}
		return Record(fields...), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrKind, n.kind)
	}
}

func (n *Node) String() string {
	switch n.kind {
	case LeafKind:
		return n.leaf.String()
	case ListKind:
		s := "("
		for i, c := range n.items {
			if i > 0 {
				s += ","
			}
			s += c.String()
		}
		return s + ")"
	case RecordKind:
		s := "{"
		for i, f := range n.fields {
			if i > 0 {
				s += ","
			}
			s += f.Key + ":" + f.Value.String()
		}
		return s + "}"
	default:
		return "?"
	}
}
