package vmap

import (
	"errors"
	"fmt"

	"github.com/san-kum/exostack/internal/tree"
)

var (
	// ErrSpecLength indicates an axis spec whose length does not match
	// the argument or leaf count.
	ErrSpecLength = errors.New("vmap: axis spec length mismatch")

	// ErrNoBatchAxis indicates a call with no mapped argument, leaving
	// the batch size undetermined.
	ErrNoBatchAxis = errors.New("vmap: no mapped axis to infer batch size from")

	// ErrBatchSize indicates mapped arguments that disagree on the
	// batch dimension.
	ErrBatchSize = errors.New("vmap: inconsistent batch sizes")

	// ErrEmptyBatch indicates a batch dimension of zero; the result
	// structure cannot be determined without at least one evaluation.
	ErrEmptyBatch = errors.New("vmap: empty batch")
)

// StructureError reports batch elements whose results disagree on
// composite structure.
type StructureError struct {
	Expected tree.Structure
	Found    tree.Structure
	Element  int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("vmap: result structure mismatch at element %d; expected %s, found %s",
		e.Element, e.Expected, e.Found)
}
