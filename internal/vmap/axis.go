package vmap

import "fmt"

// Axis designates which axis of an argument (or result) is the batch
// axis. The zero value is the unmapped sentinel: the value is broadcast
// to every batch element unchanged, never indexed.
type Axis struct {
	mapped bool
	index  int
}

// On maps along axis i.
func On(i int) Axis {
	if i < 0 {
		panic(fmt.Sprintf("vmap: negative axis %d", i))
	}
	return Axis{mapped: true, index: i}
}

// None is the broadcast sentinel.
var None = Axis{}

func (a Axis) Mapped() bool { return a.mapped }

// Index returns the batch axis; only meaningful when Mapped.
func (a Axis) Index() int { return a.index }

func (a Axis) String() string {
	if !a.mapped {
		return "none"
	}
	return fmt.Sprintf("axis %d", a.index)
}

// Spec is an axis specification before normalization: either a single
// Axis broadcast to every position, or an explicit per-position list.
type Spec struct {
	single bool
	axis   Axis
	axes   []Axis
}

// Single applies one Axis to every position.
func Single(a Axis) Spec {
	return Spec{single: true, axis: a}
}

// Each gives one Axis per position; the count must match at
// normalization time.
func Each(axes ...Axis) Spec {
	return Spec{axes: axes}
}

// Leading is the default specification: everything mapped along axis 0.
var Leading = Single(On(0))

// Broadcast is the all-unmapped specification.
var Broadcast = Single(None)

// Normalize expands the spec to exactly n entries.
func (s Spec) Normalize(n int) ([]Axis, error) {
	if s.single {
		axes := make([]Axis, n)
		for i := range axes {
			axes[i] = s.axis
		}
		return axes, nil
	}
	if len(s.axes) != n {
		return nil, fmt.Errorf("%w: %d axes for %d positions", ErrSpecLength, len(s.axes), n)
	}
	return s.axes, nil
}
