package tensor

import (
	"fmt"
	"math"
)

// broadcastShapes resolves two shapes under trailing-axis alignment:
// dimensions are compared from the last axis backwards, and a dimension
// of size 1 (or a missing leading dimension) stretches to match.
func broadcastShapes(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v with %v", ErrShapeMismatch, a, b)
		}
	}
	return out, nil
}

func apply2(a, b *Array, f func(x, y float64) float64) (*Array, error) {
	shape, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	out := Zeros(shape...)
	st := strides(shape)
	stA := strides(a.shape)
	stB := strides(b.shape)
	padA := len(shape) - len(a.shape)
	padB := len(shape) - len(b.shape)
	for i := range out.data {
		offA, offB := 0, 0
		rem := i
		for d := 0; d < len(shape); d++ {
			x := rem / st[d]
			rem %= st[d]
			if da := d - padA; da >= 0 && a.shape[da] > 1 {
				offA += x * stA[da]
			}
			if db := d - padB; db >= 0 && b.shape[db] > 1 {
				offB += x * stB[db]
			}
		}
		out.data[i] = f(a.data[offA], b.data[offB])
	}
	return out, nil
}

func (a *Array) Add(b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x + y })
}

func (a *Array) Sub(b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x - y })
}

func (a *Array) Mul(b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x * y })
}

func (a *Array) Div(b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x / y })
}

func (a *Array) Pow(b *Array) (*Array, error) {
	return apply2(a, b, math.Pow)
}

// Apply maps f over every element.
func (a *Array) Apply(f func(float64) float64) *Array {
	out := a.Clone()
	for i, v := range out.data {
		out.data[i] = f(v)
	}
	return out
}

func (a *Array) Scale(factor float64) *Array {
	return a.Apply(func(v float64) float64 { return v * factor })
}

func (a *Array) Neg() *Array { return a.Scale(-1) }

func (a *Array) Sin() *Array { return a.Apply(math.Sin) }

func (a *Array) Cos() *Array { return a.Apply(math.Cos) }

func (a *Array) Sqrt() *Array { return a.Apply(math.Sqrt) }

func (a *Array) Abs() *Array { return a.Apply(math.Abs) }

// Stack joins arrays of identical shape along a new axis inserted at
// position axis of the result. Stack(0, ...) prepends the batch axis.
func Stack(axis int, arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, ErrEmptyStack
	}
	base := arrays[0].shape
	for _, arr := range arrays[1:] {
		if !sameShape(base, arr.shape) {
			return nil, fmt.Errorf("%w: stack of %v with %v", ErrShapeMismatch, base, arr.shape)
		}
	}
	if axis < 0 || axis > len(base) {
		return nil, fmt.Errorf("%w: stack axis %d for rank %d", ErrBadAxis, axis, len(base))
	}

	n := len(arrays)
	shape := make([]int, 0, len(base)+1)
	shape = append(shape, base[:axis]...)
	shape = append(shape, n)
	shape = append(shape, base[axis:]...)

	outer := 1
	for _, d := range base[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range base[axis:] {
		inner *= d
	}

	data := make([]float64, outer*n*inner)
	for k, arr := range arrays {
		for o := 0; o < outer; o++ {
			copy(data[(o*n+k)*inner:(o*n+k+1)*inner], arr.data[o*inner:(o+1)*inner])
		}
	}
	return &Array{shape: shape, data: data}, nil
}

// Index selects the i-th slice along the given axis; the result's rank
// drops by one.
func (a *Array) Index(axis, i int) (*Array, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("%w: index axis %d for rank %d", ErrBadAxis, axis, len(a.shape))
	}
	if i < 0 || i >= a.shape[axis] {
		return nil, fmt.Errorf("%w: index %d on axis of length %d", ErrBadAxis, i, a.shape[axis])
	}

	shape := make([]int, 0, len(a.shape)-1)
	shape = append(shape, a.shape[:axis]...)
	shape = append(shape, a.shape[axis+1:]...)

	outer := 1
	for _, d := range a.shape[:axis] {
		outer *= d
	}
	n := a.shape[axis]
	inner := 1
	for _, d := range a.shape[axis+1:] {
		inner *= d
	}

	data := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		copy(data[o*inner:(o+1)*inner], a.data[(o*n+i)*inner:(o*n+i+1)*inner])
	}
	return &Array{shape: shape, data: data}, nil
}

// MoveAxis moves one axis to a new position, keeping the order of the
// remaining axes.
func (a *Array) MoveAxis(from, to int) (*Array, error) {
	r := len(a.shape)
	if from < 0 || from >= r || to < 0 || to >= r {
		return nil, fmt.Errorf("%w: move %d to %d for rank %d", ErrBadAxis, from, to, r)
	}
	if from == to {
		return a.Clone(), nil
	}

	order := make([]int, 0, r)
	for d := 0; d < r; d++ {
		if d != from {
			order = append(order, d)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)

	shape := make([]int, r)
	for d, src := range order {
		shape[d] = a.shape[src]
	}

	out := Zeros(shape...)
	stOut := strides(shape)
	stIn := strides(a.shape)
	for i := range out.data {
		off := 0
		rem := i
		for d := 0; d < r; d++ {
			x := rem / stOut[d]
			rem %= stOut[d]
			off += x * stIn[order[d]]
		}
		out.data[i] = a.data[off]
	}
	return out, nil
}
