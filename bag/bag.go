// Package bag implements segmented sums over gathered value rows, the
// reduction primitive behind the bucket-based coalescer. Bag k of the
// output is the element-wise sum of the value rows its offset span
// gathers; the layout matches the forward pass of a sum-pooling embedding
// bag.
package bag

import (
	"fmt"

	"github.com/viterin/vek/vek32"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sparsego/tensor"
)

// Sum pools value rows into one output row per bag. Bag k covers
// rowOrder[offsets[k]:offsets[k+1]], with the final bag running to the
// end of rowOrder; its output row is the sum of values.Row(rowOrder[j])
// over that span, and an empty bag yields a zero row. offsets must start
// at 0 and be non-decreasing. Bags are split contiguously across workers,
// so no two workers touch the same output row; a rowOrder entry outside
// the value matrix fails the whole call.
func Sum(values *tensor.Dense, rowOrder []int64, offsets []int64, workers int) (*tensor.Dense, error) {
	if values == nil {
		return nil, fmt.Errorf("bag: values must not be nil")
	}
	if workers < 1 {
		return nil, fmt.Errorf("bag: workers must be at least 1, got %d", workers)
	}
	if len(offsets) == 0 && len(rowOrder) > 0 {
		return nil, fmt.Errorf("bag: %d gathered rows but no bags", len(rowOrder))
	}

	total := int64(len(rowOrder))
	for k, off := range offsets {
		switch {
		case k == 0 && off != 0:
			return nil, &ErrInvalidOffsets{Position: k, Offset: off}
		case k > 0 && off < offsets[k-1]:
			return nil, &ErrInvalidOffsets{Position: k, Offset: off}
		case off > total:
			return nil, &ErrInvalidOffsets{Position: k, Offset: off}
		}
	}

	bags := len(offsets)
	out := tensor.NewDense(bags, values.Cols())
	if bags == 0 {
		return out, nil
	}

	if workers > bags {
		workers = bags
	}
	unit := bags / workers

	var g errgroup.Group
	for w := range workers {
		lo := w * unit
		hi := lo + unit
		if w == workers-1 {
			hi = bags
		}
		g.Go(func() error {
			return sumRange(out, values, rowOrder, offsets, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// sumRange fills output rows [lo, hi). The first row of a bag is copied,
// the rest accumulated in place.
func sumRange(out, values *tensor.Dense, rowOrder, offsets []int64, lo, hi int) error {
	total := int64(len(rowOrder))
	for k := lo; k < hi; k++ {
		first := offsets[k]
		last := total
		if k+1 < len(offsets) {
			last = offsets[k+1]
		}

		dst := out.Row(k)
		for j := first; j < last; j++ {
			r := rowOrder[j]
			if r < 0 || r >= int64(values.Rows()) {
				return &ErrRowOutOfRange{Index: r, Rows: values.Rows()}
			}
			if j == first {
				copy(dst, values.Row(int(r)))
			} else {
				vek32.Add_Inplace(dst, values.Row(int(r)))
			}
		}
	}
	return nil
}

// Reducer adapts Sum to the reducer interface the coalescing kernels
// consume.
type Reducer struct{}

// SumBags calls Sum.
func (Reducer) SumBags(values *tensor.Dense, rowOrder, offsets []int64, workers int) (*tensor.Dense, error) {
	return Sum(values, rowOrder, offsets, workers)
}
