package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense(t *testing.T) {
	d := NewDense(3, 4)
	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 4, d.Cols())
	assert.Len(t, d.Data(), 12)
	for _, v := range d.Data() {
		assert.Zero(t, v)
	}
}

func TestNewDenseZeroRows(t *testing.T) {
	d := NewDense(0, 4)
	assert.Equal(t, 0, d.Rows())
	assert.Empty(t, d.Data())
}

func TestNewDensePanics(t *testing.T) {
	assert.Panics(t, func() { NewDense(-1, 4) })
	assert.Panics(t, func() { NewDense(3, 0) })
}

func TestFromRows(t *testing.T) {
	d, err := FromRows([][]float32{
		{1, 2},
		{3, 4},
		{5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 2, d.Cols())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, d.Data())
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]float32{
		{1, 2},
		{3},
	})
	var sm *ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 2, sm.Expected)
	assert.Equal(t, 1, sm.Actual)
}

func TestRow(t *testing.T) {
	d, err := FromRows([][]float32{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	row := d.Row(1)
	assert.Equal(t, []float32{4, 5, 6}, row)

	// The row aliases the backing array.
	row[0] = 40
	assert.Equal(t, float32(40), d.At(1, 0))

	// Appends must not spill into a neighbouring row.
	assert.Equal(t, len(row), cap(row))

	assert.Panics(t, func() { d.Row(2) })
	assert.Panics(t, func() { d.Row(-1) })
}

func TestAtSet(t *testing.T) {
	d := NewDense(2, 2)
	d.Set(1, 1, 7.5)
	assert.Equal(t, float32(7.5), d.At(1, 1))
	assert.Zero(t, d.At(0, 0))

	assert.Panics(t, func() { d.At(2, 0) })
	assert.Panics(t, func() { d.Set(0, 2, 1) })
}

func TestSetRow(t *testing.T) {
	d := NewDense(2, 3)
	require.NoError(t, d.SetRow(0, []float32{1, 2, 3}))
	assert.Equal(t, []float32{1, 2, 3}, d.Row(0))

	var sm *ErrShapeMismatch
	assert.ErrorAs(t, d.SetRow(1, []float32{1, 2}), &sm)

	var rr *ErrRowOutOfRange
	assert.ErrorAs(t, d.SetRow(5, []float32{1, 2, 3}), &rr)
}

func TestCopyRowFrom(t *testing.T) {
	src, err := FromRows([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	dst := NewDense(2, 2)
	require.NoError(t, dst.CopyRowFrom(0, src, 1))
	assert.Equal(t, []float32{3, 4}, dst.Row(0))

	wide := NewDense(2, 3)
	var sm *ErrShapeMismatch
	assert.ErrorAs(t, wide.CopyRowFrom(0, src, 0), &sm)

	var rr *ErrRowOutOfRange
	assert.ErrorAs(t, dst.CopyRowFrom(0, src, 9), &rr)
}

func TestCopyRowsFrom(t *testing.T) {
	a, err := FromRows([][]float32{{1, 1}, {2, 2}})
	require.NoError(t, err)
	b, err := FromRows([][]float32{{3, 3}})
	require.NoError(t, err)

	dst := NewDense(3, 2)
	require.NoError(t, dst.CopyRowsFrom(0, a))
	require.NoError(t, dst.CopyRowsFrom(2, b))
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, dst.Data())

	assert.Error(t, dst.CopyRowsFrom(2, a))
	assert.Error(t, dst.CopyRowsFrom(-1, b))
}

func TestScaleRow(t *testing.T) {
	d, err := FromRows([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	d.ScaleRow(1, 2)
	assert.Equal(t, []float32{6, 8}, d.Row(1))
	assert.Equal(t, []float32{1, 2}, d.Row(0))
}

func TestAddRowFrom(t *testing.T) {
	d, err := FromRows([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	src, err := FromRows([][]float32{{10, 20}})
	require.NoError(t, err)

	d.AddRowFrom(0, src, 0)
	assert.Equal(t, []float32{11, 22}, d.Row(0))
}

func TestL1Norm(t *testing.T) {
	d, err := FromRows([][]float32{{1, -2}, {-3, 4}})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, d.L1Norm(), 1e-9)

	assert.Zero(t, NewDense(0, 3).L1Norm())
}

func TestClone(t *testing.T) {
	d, err := FromRows([][]float32{{1, 2}})
	require.NoError(t, err)

	c := d.Clone()
	assert.True(t, d.Equal(c))

	c.Set(0, 0, 99)
	assert.Equal(t, float32(1), d.At(0, 0))
	assert.False(t, d.Equal(c))
}

func TestEqualApprox(t *testing.T) {
	a, err := FromRows([][]float32{{1, 2}})
	require.NoError(t, err)
	b, err := FromRows([][]float32{{1.00005, 2}})
	require.NoError(t, err)

	assert.True(t, a.EqualApprox(b, 1e-3))
	assert.False(t, a.EqualApprox(b, 1e-6))
	assert.False(t, a.EqualApprox(NewDense(1, 3), 1))
	assert.False(t, a.EqualApprox(nil, 1))
}
