package tensor

import (
	"fmt"
	"math"
)

// Array is a dense row-major float64 array with an explicit shape.
// A rank-0 Array is a scalar. Arrays are value-like: every operation
// returns a fresh Array and never aliases its operands' data.
type Array struct {
	shape []int
	data  []float64
}

func New(shape []int, data []float64) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrBadShape, d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrBadShape, shape, n, len(data))
	}
	return &Array{shape: cloneInts(shape), data: cloneFloats(data)}, nil
}

func MustNew(shape []int, data []float64) *Array {
	a, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

func Scalar(v float64) *Array {
	return &Array{shape: []int{}, data: []float64{v}}
}

func Vector(vs ...float64) *Array {
	return &Array{shape: []int{len(vs)}, data: cloneFloats(vs)}
}

func Zeros(shape ...int) *Array {
	return Full(0, shape...)
}

func Full(v float64, shape ...int) *Array {
	n := 1
	for _, d := range shape {
		n *= d
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return &Array{shape: cloneInts(shape), data: data}
}

func (a *Array) Rank() int { return len(a.shape) }

func (a *Array) Size() int { return len(a.data) }

func (a *Array) Shape() []int { return cloneInts(a.shape) }

// Dim returns the length of the given axis.
func (a *Array) Dim(axis int) int { return a.shape[axis] }

// Values returns a copy of the underlying data in row-major order.
func (a *Array) Values() []float64 { return cloneFloats(a.data) }

// Float returns the value of a rank-0 Array.
func (a *Array) Float() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("%w: Float on shape %v", ErrBadShape, a.shape)
	}
	return a.data[0], nil
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("tensor: At with %d indices on rank-%d array", len(idx), len(a.shape)))
	}
	off := 0
	st := strides(a.shape)
	for i, x := range idx {
		off += x * st[i]
	}
	return a.data[off]
}

func (a *Array) Clone() *Array {
	return &Array{shape: cloneInts(a.shape), data: cloneFloats(a.data)}
}

func (a *Array) IsValid() bool {
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (a *Array) Equal(b *Array) bool {
	if !sameShape(a.shape, b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

func (a *Array) AllClose(b *Array, tol float64) bool {
	if !sameShape(a.shape, b.shape) {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > tol {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	return fmt.Sprintf("Array%v%v", a.shape, a.data)
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneInts(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func cloneFloats(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}
