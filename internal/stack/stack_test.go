package stack_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/exostack/internal/stack"
	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
	"github.com/san-kum/exostack/internal/vmap"
)

// orb is a minimal tree-convertible object for exercising the stack.
type orb struct {
	node *tree.Node
}

func (o orb) Tree() *tree.Node { return o.node }

func (o orb) FromTree(n *tree.Node) (orb, error) { return orb{node: n}, nil }

func (o orb) radius() *tensor.Array {
	r, _ := o.node.Get("radius")
	return r.Array()
}

func sphere(radius float64) orb {
	return orb{node: tree.Record(
		tree.Field{Key: "radius", Value: tree.Scalar(radius)},
	)}
}

func taggedSphere(radius, albedo float64) orb {
	return orb{node: tree.Record(
		tree.Field{Key: "radius", Value: tree.Scalar(radius)},
		tree.Field{Key: "albedo", Value: tree.Scalar(albedo)},
	)}
}

// ratio computes t / radius for one object.
func ratio(o orb, args ...*tree.Node) (*tree.Node, error) {
	q, err := args[0].Array().Div(o.radius())
	if err != nil {
		return nil, err
	}
	return tree.Leaf(q), nil
}

var _ = Describe("Stack construction", func() {
	It("reports its length", func() {
		s := stack.New(sphere(1), sphere(2), sphere(3))
		Expect(s.Len()).To(Equal(3))
	})

	It("keeps no stacked value when empty", func() {
		s := stack.New[orb]()
		Expect(s.Len()).To(Equal(0))
		Expect(s.Uniform()).To(BeFalse())
		_, ok := s.Stacked()
		Expect(ok).To(BeFalse())
	})

	It("builds the stacked value for matching structures", func() {
		s := stack.New(sphere(0.1), sphere(0.2), sphere(0.3))
		Expect(s.Uniform()).To(BeTrue())

		stacked, ok := s.Stacked()
		Expect(ok).To(BeTrue())

		r, found := stacked.Get("radius")
		Expect(found).To(BeTrue())
		Expect(r.Array().Shape()).To(Equal([]int{3}))
		Expect(r.Array().Values()).To(Equal([]float64{0.1, 0.2, 0.3}))
	})

	It("keeps no stacked value for mismatched structures", func() {
		s := stack.New(sphere(0.1), taggedSphere(0.2, 0.5))
		Expect(s.Uniform()).To(BeFalse())
		_, ok := s.Stacked()
		Expect(ok).To(BeFalse())
	})

	It("preserves object order", func() {
		s := stack.New(sphere(3), sphere(1), sphere(2))
		Expect(s.At(1).radius().Values()).To(Equal([]float64{1.0}))
	})

	It("never treats punctuation-laden keys as matching layouts", func() {
		glued := orb{node: tree.Record(
			tree.Field{Key: "radius:*,albedo", Value: tree.Scalar(0.1)},
		)}

		s := stack.New(glued, taggedSphere(0.2, 0.5))
		Expect(s.Uniform()).To(BeFalse())
		_, ok := s.Stacked()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Mapped callables", func() {
	It("divides a broadcast argument by each radius", func() {
		s := stack.New(sphere(0.1), sphere(0.2), sphere(0.3))

		f := s.Vmap(ratio, vmap.Broadcast, vmap.Leading)
		out, err := f(tree.Scalar(2.0))
		Expect(err).NotTo(HaveOccurred())

		want := tensor.Vector(20.0, 10.0, 2.0/0.3)
		Expect(out.Array().AllClose(want, 1e-12)).To(BeTrue())
	})

	It("maps functions that take no extra arguments", func() {
		s := stack.New(sphere(1.0), sphere(2.0))

		double := func(o orb, args ...*tree.Node) (*tree.Node, error) {
			return tree.Leaf(o.radius().Scale(2)), nil
		}

		f := s.Vmap(double, vmap.Leading, vmap.Leading)
		out, err := f()
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Array().Values()).To(Equal([]float64{2.0, 4.0}))
	})

	It("produces identical results on the fast and looped paths", func() {
		s := stack.New(sphere(0.1), sphere(0.2), sphere(0.3))
		Expect(s.Uniform()).To(BeTrue())

		t := tree.Leaf(tensor.Vector(0.5, 1.0, 1.5, 2.0))

		fast, err := s.Vmap(ratio, vmap.Broadcast, vmap.Leading)(t)
		Expect(err).NotTo(HaveOccurred())

		slow, err := s.Vmap(ratio, vmap.Broadcast, vmap.Leading, stack.ForceLoop())(t)
		Expect(err).NotTo(HaveOccurred())

		Expect(fast.Array().Equal(slow.Array())).To(BeTrue())
		Expect(fast.Array().Shape()).To(Equal([]int{3, 4}))
	})

	It("falls back to the loop for mismatched structures", func() {
		s := stack.New(sphere(0.1), taggedSphere(0.2, 0.5))
		Expect(s.Uniform()).To(BeFalse())

		f := s.Vmap(ratio, vmap.Broadcast, vmap.Leading)
		out, err := f(tree.Scalar(2.0))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Array().AllClose(tensor.Vector(20.0, 10.0), 1e-12)).To(BeTrue())
	})

	It("permutes outputs with the objects, values unchanged", func() {
		forward := stack.New(sphere(0.1), sphere(0.2), sphere(0.3))
		backward := stack.New(sphere(0.3), sphere(0.2), sphere(0.1))

		t := tree.Scalar(2.0)
		a, err := forward.Vmap(ratio, vmap.Broadcast, vmap.Leading)(t)
		Expect(err).NotTo(HaveOccurred())
		b, err := backward.Vmap(ratio, vmap.Broadcast, vmap.Leading)(t)
		Expect(err).NotTo(HaveOccurred())

		av := a.Array().Values()
		bv := b.Array().Values()
		for i := range av {
			Expect(bv[len(bv)-1-i]).To(BeNumerically("~", av[i], 1e-12))
		}
	})

	It("indexes mapped extra arguments per object", func() {
		s := stack.New(sphere(1), sphere(2))

		add := func(o orb, args ...*tree.Node) (*tree.Node, error) {
			sum, err := o.radius().Add(args[0].Array())
			if err != nil {
				return nil, err
			}
			return tree.Leaf(sum), nil
		}

		offsets := tree.Leaf(tensor.Vector(10, 20))
		out, err := s.Vmap(add, vmap.Leading, vmap.Leading)(offsets)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Array().Values()).To(Equal([]float64{11.0, 22.0}))
	})
})

var _ = Describe("Failure modes", func() {
	It("rejects axis specs that do not match the argument count", func() {
		s := stack.New(sphere(1), sphere(2))

		f := s.Vmap(ratio, vmap.Each(vmap.None, vmap.None), vmap.Leading)
		_, err := f(tree.Scalar(2.0))
		Expect(errors.Is(err, vmap.ErrSpecLength)).To(BeTrue())
	})

	It("rejects mapped calls on an empty stack", func() {
		s := stack.New[orb]()

		f := s.Vmap(ratio, vmap.Broadcast, vmap.Leading)
		_, err := f(tree.Scalar(2.0))
		Expect(errors.Is(err, stack.ErrEmptyStack)).To(BeTrue())
	})

	It("fails fast when result structures diverge between objects", func() {
		s := stack.New(sphere(1), taggedSphere(2, 0.5))

		shapeshifter := func(o orb, args ...*tree.Node) (*tree.Node, error) {
			if _, ok := o.node.Get("albedo"); ok {
				return tree.List(tree.Scalar(1), tree.Scalar(2)), nil
			}
			return tree.Scalar(1), nil
		}

		f := s.Vmap(shapeshifter, vmap.Broadcast, vmap.Leading)
		_, err := f()

		var serr *vmap.StructureError
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Element).To(Equal(1))
		Expect(serr.Expected.Equal(serr.Found)).To(BeFalse())
	})
})

var _ = Describe("Unmapped output leaves", func() {
	pair := func(o orb, args ...*tree.Node) (*tree.Node, error) {
		return tree.Record(
			tree.Field{Key: "r", Value: tree.Leaf(o.radius())},
			tree.Field{Key: "c", Value: tree.Scalar(42)},
		), nil
	}

	It("takes the first object's value without checking by default", func() {
		s := stack.New(sphere(1), sphere(2))

		f := s.Vmap(pair, vmap.Broadcast, vmap.Each(vmap.On(0), vmap.None), stack.ForceLoop())
		out, err := f()
		Expect(err).NotTo(HaveOccurred())

		c, _ := out.Get("c")
		Expect(c.Array().Rank()).To(Equal(0))

		r, _ := out.Get("r")
		Expect(r.Array().Values()).To(Equal([]float64{1.0, 2.0}))
	})

	It("detects disagreement under VerifyUnmapped", func() {
		s := stack.New(sphere(1), sphere(2))

		leaky := func(o orb, args ...*tree.Node) (*tree.Node, error) {
			return tree.Record(
				tree.Field{Key: "r", Value: tree.Leaf(o.radius())},
				tree.Field{Key: "c", Value: tree.Leaf(o.radius().Scale(10))},
			), nil
		}

		f := s.Vmap(leaky, vmap.Broadcast, vmap.Each(vmap.On(0), vmap.None), stack.VerifyUnmapped())
		_, err := f()
		Expect(errors.Is(err, stack.ErrUnmappedDisagree)).To(BeTrue())
	})

	It("passes VerifyUnmapped when objects agree", func() {
		s := stack.New(sphere(1), sphere(2))

		f := s.Vmap(pair, vmap.Broadcast, vmap.Each(vmap.On(0), vmap.None), stack.VerifyUnmapped())
		out, err := f()
		Expect(err).NotTo(HaveOccurred())

		c, _ := out.Get("c")
		v, err := c.Float()
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(42.0))
	})
})
