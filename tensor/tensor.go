// Package tensor provides the dense row-major float32 matrix that carries
// gradient rows and sampled noise between the kernels in this module.
package tensor

import (
	"fmt"
	"math"

	"github.com/viterin/vek/vek32"
)

// Dense is a dense (rows x cols) float32 matrix backed by one contiguous
// slice in row-major order.
type Dense struct {
	rows int
	cols int
	data []float32
}

// NewDense allocates a zeroed (rows x cols) matrix. It panics when rows
// is negative or cols is not positive; shape arguments are produced by
// code, not data, so a bad shape is a programming error.
func NewDense(rows, cols int) *Dense {
	if rows < 0 {
		panic(fmt.Sprintf("tensor: negative rows %d", rows))
	}
	if cols < 1 {
		panic(fmt.Sprintf("tensor: cols must be positive, got %d", cols))
	}
	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// FromRows builds a matrix holding a copy of the given rows. All rows
// must share one length.
func FromRows(rows [][]float32) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tensor: at least one row required")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("tensor: rows must not be empty")
	}

	d := NewDense(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &ErrShapeMismatch{Expected: cols, Actual: len(row)}
		}
		copy(d.Row(i), row)
	}
	return d, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// Data returns the backing slice in row-major order.
func (d *Dense) Data() []float32 { return d.data }

// Row returns row i as a slice aliasing the backing array. The capacity
// is capped so appends cannot spill into the next row.
func (d *Dense) Row(i int) []float32 {
	d.checkRow(i)
	off := i * d.cols
	return d.data[off : off+d.cols : off+d.cols]
}

// At returns the element at (i, j).
func (d *Dense) At(i, j int) float32 {
	d.checkAt(i, j)
	return d.data[i*d.cols+j]
}

// Set stores v at (i, j).
func (d *Dense) Set(i, j int, v float32) {
	d.checkAt(i, j)
	d.data[i*d.cols+j] = v
}

// SetRow copies src into row i. The length of src must equal Cols.
func (d *Dense) SetRow(i int, src []float32) error {
	if i < 0 || i >= d.rows {
		return &ErrRowOutOfRange{Row: i, Rows: d.rows}
	}
	if len(src) != d.cols {
		return &ErrShapeMismatch{Expected: d.cols, Actual: len(src)}
	}
	copy(d.Row(i), src)
	return nil
}

// CopyRowFrom copies row j of src into row i of d. Column counts must
// match.
func (d *Dense) CopyRowFrom(i int, src *Dense, j int) error {
	if src.cols != d.cols {
		return &ErrShapeMismatch{Expected: d.cols, Actual: src.cols}
	}
	if i < 0 || i >= d.rows {
		return &ErrRowOutOfRange{Row: i, Rows: d.rows}
	}
	if j < 0 || j >= src.rows {
		return &ErrRowOutOfRange{Row: j, Rows: src.rows}
	}
	copy(d.Row(i), src.Row(j))
	return nil
}

// CopyRowsFrom copies all rows of src into d starting at row start. The
// column counts must match and src must fit.
func (d *Dense) CopyRowsFrom(start int, src *Dense) error {
	if src.cols != d.cols {
		return &ErrShapeMismatch{Expected: d.cols, Actual: src.cols}
	}
	if start < 0 || start+src.rows > d.rows {
		return &ErrRowOutOfRange{Row: start, Rows: d.rows - src.rows + 1}
	}
	copy(d.data[start*d.cols:], src.data)
	return nil
}

// ScaleRow multiplies row i by s in place.
func (d *Dense) ScaleRow(i int, s float32) {
	vek32.MulNumber_Inplace(d.Row(i), s)
}

// AddRowFrom accumulates row j of src into row i of d element-wise. The
// column counts must match; out-of-range rows panic via Row.
func (d *Dense) AddRowFrom(i int, src *Dense, j int) {
	vek32.Add_Inplace(d.Row(i), src.Row(j))
}

// L1Norm returns the sum of absolute values over all elements,
// accumulated in float64.
func (d *Dense) L1Norm() float64 {
	var sum float64
	for _, v := range d.data {
		sum += math.Abs(float64(v))
	}
	return sum
}

// Clone returns a deep copy of d.
func (d *Dense) Clone() *Dense {
	out := NewDense(d.rows, d.cols)
	copy(out.data, d.data)
	return out
}

// Equal reports whether d and other have the same shape and identical
// elements.
func (d *Dense) Equal(other *Dense) bool {
	if other == nil || d.rows != other.rows || d.cols != other.cols {
		return false
	}
	for i, v := range d.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports whether d and other have the same shape and all
// elements within tol of each other. Summation order varies with the
// worker count, so results of parallel reductions should be compared with
// a tolerance rather than exactly.
func (d *Dense) EqualApprox(other *Dense, tol float64) bool {
	if other == nil || d.rows != other.rows || d.cols != other.cols {
		return false
	}
	for i, v := range d.data {
		if math.Abs(float64(v)-float64(other.data[i])) > tol {
			return false
		}
	}
	return true
}

func (d *Dense) checkRow(i int) {
	if i < 0 || i >= d.rows {
		panic(&ErrRowOutOfRange{Row: i, Rows: d.rows})
	}
}

func (d *Dense) checkAt(i, j int) {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		panic(fmt.Sprintf("tensor: element (%d, %d) out of range (%d, %d)", i, j, d.rows, d.cols))
	}
}
