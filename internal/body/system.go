package body

import (
	"github.com/san-kum/exostack/internal/stack"
	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
	"github.com/san-kum/exostack/internal/vmap"
)

// System is a central plus an ordered stack of orbiting bodies. It is
// immutable: AddBody builds a new System (and a new stack, so the
// uniform/mixed decision is always fresh).
type System struct {
	central Central
	bodies  *stack.Stack[Body]
}

func NewSystem(central Central, bodies ...Body) System {
	return System{central: central, bodies: stack.New(bodies...)}
}

func (s System) Central() Central { return s.central }

func (s System) Len() int { return s.bodies.Len() }

func (s System) Bodies() []Body { return s.bodies.Objects() }

// Uniform reports whether the bodies share one parameter layout, so
// mapped evaluations take the batched path.
func (s System) Uniform() bool { return s.bodies.Uniform() }

func (s System) AddBody(b Body) System {
	return NewSystem(s.central, append(s.bodies.Objects(), b)...)
}

// BodyVmap maps fn over the system's bodies, batched when every body
// shares the same parameter layout. in covers the extra arguments
// only; out says where the body axis lands in the result.
func (s System) BodyVmap(fn stack.Func[Body], in, out vmap.Spec, opts ...stack.Option) stack.Mapped {
	return s.bodies.Vmap(fn, in, out, opts...)
}

// Positions evaluates every body's position at times t, stacked along
// a leading body axis.
func (s System) Positions(t *tensor.Array) (*tree.Node, error) {
	f := s.BodyVmap(func(b Body, args ...*tree.Node) (*tree.Node, error) {
		return b.Position(s.central, args[0].Array())
	}, vmap.Broadcast, vmap.Leading)
	return f(tree.Leaf(t))
}

// RadiusRatios evaluates r/R for every body, in body order.
func (s System) RadiusRatios() (*tensor.Array, error) {
	f := s.BodyVmap(func(b Body, args ...*tree.Node) (*tree.Node, error) {
		k, err := b.RadiusRatio(s.central)
		if err != nil {
			return nil, err
		}
		return tree.Leaf(k), nil
	}, vmap.Broadcast, vmap.Leading)
	out, err := f()
	if err != nil {
		return nil, err
	}
	return out.Array(), nil
}

// TransitDepths evaluates the uniform-disk depth for every body.
func (s System) TransitDepths() (*tensor.Array, error) {
	f := s.BodyVmap(func(b Body, args ...*tree.Node) (*tree.Node, error) {
		d, err := b.TransitDepth(s.central)
		if err != nil {
			return nil, err
		}
		return tree.Leaf(d), nil
	}, vmap.Broadcast, vmap.Leading)
	out, err := f()
	if err != nil {
		return nil, err
	}
	return out.Array(), nil
}
