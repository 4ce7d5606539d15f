package body

import (
	"fmt"
	"math"

	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
)

// Units: periods in years, masses in solar masses, distances in AU,
// radii in solar radii, angles in radians. In these units Kepler's
// third law reads a^3 = M * P^2.

// Central is the star (or other primary) a system's bodies orbit.
type Central struct {
	Mass   *tensor.Array
	Radius *tensor.Array
}

func NewCentral() Central {
	return Central{
		Mass:   tensor.Scalar(1.0),
		Radius: tensor.Scalar(1.0),
	}
}

// Body is one orbiting body. All parameters are tensor leaves so a
// Body rebuilt from a stacked tree carries batched values through the
// same arithmetic.
type Body struct {
	Period       *tensor.Array
	Radius       *tensor.Array
	Mass         *tensor.Array
	Inclination  *tensor.Array
	Eccentricity *tensor.Array
	TimeTransit  *tensor.Array
}

func NewBody() Body {
	return Body{
		Period:       tensor.Scalar(1.0),
		Radius:       tensor.Scalar(0.01),
		Mass:         tensor.Scalar(0.0),
		Inclination:  tensor.Scalar(math.Pi / 2),
		Eccentricity: tensor.Scalar(0.0),
		TimeTransit:  tensor.Scalar(0.0),
	}
}

// Field order here defines the body's structure; FromTree requires the
// same layout back.
func (b Body) Tree() *tree.Node {
	return tree.Record(
		tree.Field{Key: "period", Value: tree.Leaf(b.Period)},
		tree.Field{Key: "radius", Value: tree.Leaf(b.Radius)},
		tree.Field{Key: "mass", Value: tree.Leaf(b.Mass)},
		tree.Field{Key: "inclination", Value: tree.Leaf(b.Inclination)},
		tree.Field{Key: "eccentricity", Value: tree.Leaf(b.Eccentricity)},
		tree.Field{Key: "time_transit", Value: tree.Leaf(b.TimeTransit)},
	)
}

func (b Body) FromTree(n *tree.Node) (Body, error) {
	out := Body{}
	for _, f := range []struct {
		key string
		dst **tensor.Array
	}{
		{"period", &out.Period},
		{"radius", &out.Radius},
		{"mass", &out.Mass},
		{"inclination", &out.Inclination},
		{"eccentricity", &out.Eccentricity},
		{"time_transit", &out.TimeTransit},
	} {
		c, ok := n.Get(f.key)
		if !ok || !c.IsLeaf() {
			return Body{}, fmt.Errorf("body: tree missing %q leaf", f.key)
		}
		*f.dst = c.Array()
	}
	return out, nil
}

// SemimajorAxis derives the orbital distance from the period and the
// central mass.
func (b Body) SemimajorAxis(c Central) (*tensor.Array, error) {
	p2, err := b.Period.Mul(b.Period)
	if err != nil {
		return nil, err
	}
	mp2, err := c.Mass.Mul(p2)
	if err != nil {
		return nil, err
	}
	return mp2.Apply(math.Cbrt), nil
}

// Position returns the body's {x, y, z} at times t, for a circular
// orbit inclined by Inclination and phased so the transit happens at
// TimeTransit. Eccentric orbits need a Kepler solver and are handled
// elsewhere.
func (b Body) Position(c Central, t *tensor.Array) (*tree.Node, error) {
	a, err := b.SemimajorAxis(c)
	if err != nil {
		return nil, err
	}

	dt, err := t.Sub(b.TimeTransit)
	if err != nil {
		return nil, err
	}
	frac, err := dt.Div(b.Period)
	if err != nil {
		return nil, err
	}
	phase := frac.Scale(2 * math.Pi)

	x, err := a.Mul(phase.Sin())
	if err != nil {
		return nil, err
	}
	radial, err := a.Mul(phase.Cos())
	if err != nil {
		return nil, err
	}
	y, err := radial.Mul(b.Inclination.Cos())
	if err != nil {
		return nil, err
	}
	z, err := radial.Mul(b.Inclination.Sin())
	if err != nil {
		return nil, err
	}

	return tree.Record(
		tree.Field{Key: "x", Value: tree.Leaf(x)},
		tree.Field{Key: "y", Value: tree.Leaf(y)},
		tree.Field{Key: "z", Value: tree.Leaf(z)},
	), nil
}

// RadiusRatio is r/R, the quantity transit photometry measures.
func (b Body) RadiusRatio(c Central) (*tensor.Array, error) {
	return b.Radius.Div(c.Radius)
}

// TransitDepth is the uniform-disk depth (r/R)^2; limb darkening is a
// photometric refinement outside this package.
func (b Body) TransitDepth(c Central) (*tensor.Array, error) {
	k, err := b.RadiusRatio(c)
	if err != nil {
		return nil, err
	}
	return k.Mul(k)
}
