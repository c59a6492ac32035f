package sparsego

import (
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/sparsego/tensor"
)

// Moments holds the mean and sample standard deviation of a set of
// matrix elements.
type Moments struct {
	Mean float64
	Std  float64
}

// MatrixMoments computes the moments over all elements of m. Sampled
// noise is checked against its target distribution with it.
func MatrixMoments(m *tensor.Dense) Moments {
	return momentsOf(m.Data())
}

// RowMoments computes the moments over the elements of row i of m.
func RowMoments(m *tensor.Dense, i int) Moments {
	return momentsOf(m.Row(i))
}

// RowRangeMoments computes pooled moments over the elements of rows
// [lo, hi) of m. It panics when the range does not lie within the matrix.
func RowRangeMoments(m *tensor.Dense, lo, hi int) Moments {
	if lo < 0 || hi > m.Rows() || lo > hi {
		panic(&tensor.ErrRowOutOfRange{Row: lo, Rows: m.Rows()})
	}
	return momentsOf(m.Data()[lo*m.Cols() : hi*m.Cols()])
}

func momentsOf(data []float32) Moments {
	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Moments{Mean: mean, Std: std}
}
