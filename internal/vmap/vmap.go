package vmap

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
)

// Func is an evaluation over structured values.
type Func func(args ...*tree.Node) (*tree.Node, error)

// Vectorize turns a per-element function into a batched one. Each
// argument's Axis says which of its leaves' axes is the batch axis
// (None broadcasts the argument to every element); out says where the
// batch axis lands in each result leaf.
//
// The caller sees a single dispatch; internally the batch is fanned out
// over a bounded worker pool and the per-element results are stacked by
// index, so element evaluation order never affects the output.
func Vectorize(fn Func, in, out Spec) Func {
	return func(args ...*tree.Node) (*tree.Node, error) {
		inAxes, err := in.Normalize(len(args))
		if err != nil {
			return nil, err
		}

		n, err := batchSize(args, inAxes)
		if err != nil {
			return nil, err
		}

		// Map stage: independent per-element evaluations.
		results := make([]*tree.Node, n)
		errs := make([]error, n)

		workers := runtime.GOMAXPROCS(0)
		if workers > n {
			workers = n
		}
		idx := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idx {
					elem, err := Select(args, inAxes, i)
					if err != nil {
						errs[i] = err
						continue
					}
					results[i], errs[i] = fn(elem...)
				}
			}()
		}
		for i := 0; i < n; i++ {
			idx <- i
		}
		close(idx)
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		return Collect(results, out)
	}
}

// batchSize reads the batch dimension off every mapped argument leaf
// and checks they agree.
func batchSize(args []*tree.Node, inAxes []Axis) (int, error) {
	n := -1
	for a, arg := range args {
		if !inAxes[a].Mapped() {
			continue
		}
		ax := inAxes[a].Index()
		leaves, _ := tree.Flatten(arg)
		for _, l := range leaves {
			if ax >= l.Rank() {
				return 0, fmt.Errorf("%w: argument %d has rank %d, mapped on axis %d",
					tensor.ErrBadAxis, a, l.Rank(), ax)
			}
			d := l.Dim(ax)
			if n == -1 {
				n = d
			} else if n != d {
				return 0, fmt.Errorf("%w: %d vs %d", ErrBatchSize, n, d)
			}
		}
	}
	if n == -1 {
		return 0, ErrNoBatchAxis
	}
	if n == 0 {
		return 0, ErrEmptyBatch
	}
	return n, nil
}

// Select extracts batch element i from args: mapped arguments have
// index i taken along their batch axis in every leaf, unmapped
// arguments pass through whole.
func Select(args []*tree.Node, inAxes []Axis, i int) ([]*tree.Node, error) {
	elem := make([]*tree.Node, len(args))
	for a, arg := range args {
		if !inAxes[a].Mapped() {
			elem[a] = arg
			continue
		}
		ax := inAxes[a].Index()
		sel, err := tree.Map(arg, func(l *tensor.Array) (*tensor.Array, error) {
			return l.Index(ax, i)
		})
		if err != nil {
			return nil, err
		}
		elem[a] = sel
	}
	return elem, nil
}

// Collect validates that every result shares one composite structure,
// then stacks per-leaf along the requested output axes. Leaves declared
// unmapped take element 0's value; callers using None for an output
// leaf assert that every element agrees there.
func Collect(results []*tree.Node, out Spec) (*tree.Node, error) {
	leaves := make([][]*tensor.Array, len(results))
	var ref tree.Structure
	for i, r := range results {
		ls, s := tree.Flatten(r)
		if i == 0 {
			ref = s
		} else if !s.Equal(ref) {
			return nil, &StructureError{Expected: ref, Found: s, Element: i}
		}
		leaves[i] = ls
	}

	outAxes, err := out.Normalize(ref.NumLeaves())
	if err != nil {
		return nil, err
	}

	stacked := make([]*tensor.Array, ref.NumLeaves())
	for j := range stacked {
		if !outAxes[j].Mapped() {
			stacked[j] = leaves[0][j]
			continue
		}
		parts := make([]*tensor.Array, len(results))
		for i := range results {
			parts[i] = leaves[i][j]
		}
		s, err := tensor.Stack(outAxes[j].Index(), parts...)
		if err != nil {
			return nil, err
		}
		stacked[j] = s
	}
	return ref.Unflatten(stacked)
}
