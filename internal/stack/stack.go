package stack

import (
	"fmt"

	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
	"github.com/san-kum/exostack/internal/vmap"
)

// Treeable is an object that can cross the tree boundary in both
// directions. FromTree acts as a factory: it is called on an existing
// object and must build a fresh one from the given tree, which may
// carry batched leaves.
type Treeable[T any] interface {
	Tree() *tree.Node
	FromTree(*tree.Node) (T, error)
}

type layout int

const (
	// layoutUniform: all objects share one structure; the stacked
	// value exists and the batched fast path is available.
	layoutUniform layout = iota
	// layoutMixed: structures differ (or the stack is empty); mapped
	// calls run the per-object loop.
	layoutMixed
)

// Stack holds a fixed, ordered collection of structured objects. The
// uniform/mixed decision and the stacked value are computed once at
// construction and never re-derived; a Stack is immutable thereafter.
type Stack[T Treeable[T]] struct {
	objects []T
	layout  layout
	stacked *tree.Node
}

// New probes the objects' structures and, when they all match, eagerly
// builds the stacked value: one object-shaped tree whose every leaf
// gains a leading axis of size len(objects), in insertion order.
// Mismatched structures are not an error; the stack simply stays in
// the looped layout.
func New[T Treeable[T]](objects ...T) *Stack[T] {
	s := &Stack[T]{objects: objects, layout: layoutMixed}
	if len(objects) == 0 {
		return s
	}

	leaves := make([][]*tensor.Array, len(objects))
	var ref tree.Structure
	for i, obj := range objects {
		ls, st := tree.Flatten(obj.Tree())
		if i == 0 {
			ref = st
		} else if !st.Equal(ref) {
			return s
		}
		leaves[i] = ls
	}

	stacked := make([]*tensor.Array, ref.NumLeaves())
	for j := range stacked {
		parts := make([]*tensor.Array, len(objects))
		for i := range objects {
			parts[i] = leaves[i][j]
		}
		joined, err := tensor.Stack(0, parts...)
		if err != nil {
			// Same structure but incompatible leaf shapes: the batched
			// path cannot serve this collection either.
			return s
		}
		stacked[j] = joined
	}

	node, err := ref.Unflatten(stacked)
	if err != nil {
		return s
	}
	s.layout = layoutUniform
	s.stacked = node
	return s
}

func (s *Stack[T]) Len() int { return len(s.objects) }

// Objects returns the stacked objects in insertion order.
func (s *Stack[T]) Objects() []T {
	out := make([]T, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Stack[T]) At(i int) T { return s.objects[i] }

// Uniform reports whether the batched fast path is available.
func (s *Stack[T]) Uniform() bool { return s.layout == layoutUniform }

// Stacked returns the stacked value when the layout is uniform.
func (s *Stack[T]) Stacked() (*tree.Node, bool) {
	return s.stacked, s.layout == layoutUniform
}

// Func is a function evaluated against one object plus extra
// positional arguments.
type Func[T Treeable[T]] func(obj T, args ...*tree.Node) (*tree.Node, error)

// Mapped is a Func mapped over every object of a stack.
type Mapped func(args ...*tree.Node) (*tree.Node, error)

// Vmap maps fn over the objects of the stack. in describes the batch
// axes of the extra arguments only (never the object argument); out
// describes where the object axis lands in each result leaf.
//
// When the stack is uniform the whole batch goes through a single
// [vmap.Vectorize] dispatch against the stacked value. Otherwise fn is
// applied once per object and the per-object results are validated for
// a common structure and stacked leaf-wise, which yields the same
// axis-mapping contract at a per-object dispatch cost.
//
// An output leaf declared [vmap.None] takes the first object's value;
// callers assert all objects agree there. That assertion is unchecked
// unless [VerifyUnmapped] is set.
func (s *Stack[T]) Vmap(fn Func[T], in, out vmap.Spec, opts ...Option) Mapped {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(args ...*tree.Node) (*tree.Node, error) {
		inAxes, err := in.Normalize(len(args))
		if err != nil {
			return nil, err
		}

		if s.layout == layoutUniform && !o.forceLoop && !o.verifyUnmapped {
			return s.batched(fn, inAxes, out, args)
		}
		return s.looped(fn, inAxes, out, args, o)
	}
}

// batched is the fast path: one vectorized dispatch, with the stacked
// value mapped on its leading axis as the object argument.
func (s *Stack[T]) batched(fn Func[T], inAxes []vmap.Axis, out vmap.Spec, args []*tree.Node) (*tree.Node, error) {
	wrapped := func(all ...*tree.Node) (*tree.Node, error) {
		obj, err := s.objects[0].FromTree(all[0])
		if err != nil {
			return nil, err
		}
		return fn(obj, all[1:]...)
	}

	axes := append([]vmap.Axis{vmap.On(0)}, inAxes...)
	batched := vmap.Vectorize(wrapped, vmap.Each(axes...), out)
	return batched(append([]*tree.Node{s.stacked}, args...)...)
}

// looped is the fallback: map, validate, reduce.
func (s *Stack[T]) looped(fn Func[T], inAxes []vmap.Axis, out vmap.Spec, args []*tree.Node, o options) (*tree.Node, error) {
	if len(s.objects) == 0 {
		return nil, ErrEmptyStack
	}

	results := make([]*tree.Node, len(s.objects))
	for n, obj := range s.objects {
		elem, err := vmap.Select(args, inAxes, n)
		if err != nil {
			return nil, err
		}
		res, err := fn(obj, elem...)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", n, err)
		}
		results[n] = res
	}

	if o.verifyUnmapped {
		if err := verifyUnmapped(results, out); err != nil {
			return nil, err
		}
	}
	return vmap.Collect(results, out)
}

// verifyUnmapped is the opt-in consistency pass behind the None output
// contract: every object must produce an identical value at each leaf
// the caller declared unmapped.
func verifyUnmapped(results []*tree.Node, out vmap.Spec) error {
	ref, s := tree.Flatten(results[0])
	outAxes, err := out.Normalize(s.NumLeaves())
	if err != nil {
		return err
	}
	for n, r := range results[1:] {
		leaves, rs := tree.Flatten(r)
		if !rs.Equal(s) {
			// Collect reports this with full context.
			return nil
		}
		for j, ax := range outAxes {
			if ax.Mapped() {
				continue
			}
			if !leaves[j].Equal(ref[j]) {
				return fmt.Errorf("%w: leaf %d differs between objects 0 and %d",
					ErrUnmappedDisagree, j, n+1)
			}
		}
	}
	return nil
}
