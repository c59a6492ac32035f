package sparsego

import (
	"math"

	"github.com/hupe1980/sparsego/tensor"
)

// Accumulator is a sparse gradient for an embedding table in COO form:
// one table row index per entry plus a dense gradient row of matching
// dimension. Duplicate indices are allowed until the accumulator has been
// coalesced; a coalesced accumulator carries strictly ascending indices
// and at most one entry per table row.
type Accumulator struct {
	rows      int
	dim       int
	indices   []int64
	values    *tensor.Dense
	coalesced bool
}

// NewAccumulator validates the entry lists and wraps them. indices and
// values are retained, not copied; the accumulator owns them afterwards.
// A nil values matrix is treated as zero entries.
func NewAccumulator(rows, dim int, indices []int64, values *tensor.Dense) (*Accumulator, error) {
	if rows < 0 || dim < 1 {
		return nil, &ErrInvalidShape{Rows: rows, Dim: dim}
	}
	if values == nil {
		values = tensor.NewDense(0, dim)
	}
	if values.Cols() != dim {
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: values.Cols()}
	}
	if len(indices) != values.Rows() {
		return nil, &ErrLengthMismatch{Indices: len(indices), Values: values.Rows()}
	}
	if len(indices) > math.MaxInt32 {
		return nil, &ErrTooManyEntries{Entries: len(indices)}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= int64(rows) {
			return nil, &ErrIndexOutOfRange{Index: idx, Rows: rows}
		}
	}

	return &Accumulator{
		rows:    rows,
		dim:     dim,
		indices: indices,
		values:  values,
	}, nil
}

// Rows returns the number of rows of the embedding table the accumulator
// addresses.
func (a *Accumulator) Rows() int { return a.rows }

// Dim returns the gradient dimensionality.
func (a *Accumulator) Dim() int { return a.dim }

// NNZ returns the number of stored entries, duplicates included.
func (a *Accumulator) NNZ() int { return len(a.indices) }

// Indices returns the entry indices. The slice is owned by the
// accumulator and must not be mutated.
func (a *Accumulator) Indices() []int64 { return a.indices }

// Values returns the entry rows. The matrix is owned by the accumulator
// and must not be mutated.
func (a *Accumulator) Values() *tensor.Dense { return a.values }

// Coalesced reports whether duplicate indices have already been merged.
func (a *Accumulator) Coalesced() bool { return a.coalesced }

// L1Norm returns the sum of absolute values over all entry elements.
// Coalescing only regroups additions, so up to float rounding the norm of
// a non-cancelling accumulator is preserved.
func (a *Accumulator) L1Norm() float64 {
	return a.values.L1Norm()
}

// Append builds a new uncoalesced accumulator holding this accumulator's
// entries followed by the given extra entries. Gradients and freshly
// sampled noise for the same step are merged this way before a single
// coalesce pass. A nil values matrix is treated as zero extra entries.
func (a *Accumulator) Append(indices []int64, values *tensor.Dense) (*Accumulator, error) {
	if values == nil {
		values = tensor.NewDense(0, a.dim)
	}
	if values.Cols() != a.dim {
		return nil, &ErrDimensionMismatch{Expected: a.dim, Actual: values.Cols()}
	}
	if len(indices) != values.Rows() {
		return nil, &ErrLengthMismatch{Indices: len(indices), Values: values.Rows()}
	}
	if len(a.indices)+len(indices) > math.MaxInt32 {
		return nil, &ErrTooManyEntries{Entries: len(a.indices) + len(indices)}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= int64(a.rows) {
			return nil, &ErrIndexOutOfRange{Index: idx, Rows: a.rows}
		}
	}

	mergedIdx := make([]int64, 0, len(a.indices)+len(indices))
	mergedIdx = append(mergedIdx, a.indices...)
	mergedIdx = append(mergedIdx, indices...)

	merged := tensor.NewDense(len(mergedIdx), a.dim)
	if err := merged.CopyRowsFrom(0, a.values); err != nil {
		return nil, err
	}
	if err := merged.CopyRowsFrom(a.values.Rows(), values); err != nil {
		return nil, err
	}

	return &Accumulator{
		rows:    a.rows,
		dim:     a.dim,
		indices: mergedIdx,
		values:  merged,
	}, nil
}
