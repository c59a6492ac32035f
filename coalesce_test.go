package sparsego

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparsego/tensor"
	"github.com/hupe1980/sparsego/testutil"
)

var coalesceVariants = []struct {
	name string
	fn   func(*Kernel, *Accumulator) *Accumulator
}{
	{name: "Sort", fn: (*Kernel).CoalesceSort},
	{name: "Bags", fn: (*Kernel).CoalesceBags},
}

func TestCoalesce(t *testing.T) {
	for _, variant := range coalesceVariants {
		t.Run(variant.name, func(t *testing.T) {
			kernel, err := New(WithWorkers(4))
			require.NoError(t, err)

			t.Run("MergesDuplicates", func(t *testing.T) {
				values, err := tensor.FromRows([][]float32{{1, 1}, {1, 1}, {0, 2}})
				require.NoError(t, err)
				acc, err := NewAccumulator(10, 2, []int64{2, 2, 7}, values)
				require.NoError(t, err)

				out := variant.fn(kernel, acc)

				assert.True(t, out.Coalesced())
				assert.Equal(t, 10, out.Rows())
				assert.Equal(t, 2, out.Dim())
				assert.Equal(t, []int64{2, 7}, out.Indices())

				want, err := tensor.FromRows([][]float32{{2, 2}, {0, 2}})
				require.NoError(t, err)
				assert.True(t, out.Values().EqualApprox(want, 1e-6))
			})

			t.Run("SortsIndices", func(t *testing.T) {
				values, err := tensor.FromRows([][]float32{{1, 0}, {2, 0}, {3, 0}})
				require.NoError(t, err)
				acc, err := NewAccumulator(10, 2, []int64{9, 0, 5}, values)
				require.NoError(t, err)

				out := variant.fn(kernel, acc)

				assert.Equal(t, []int64{0, 5, 9}, out.Indices())
				assert.Equal(t, float32(2), out.Values().At(0, 0))
				assert.Equal(t, float32(3), out.Values().At(1, 0))
				assert.Equal(t, float32(1), out.Values().At(2, 0))
			})

			t.Run("SingleEntry", func(t *testing.T) {
				values, err := tensor.FromRows([][]float32{{1, 2}})
				require.NoError(t, err)
				acc, err := NewAccumulator(10, 2, []int64{3}, values)
				require.NoError(t, err)

				out := variant.fn(kernel, acc)

				assert.Equal(t, []int64{3}, out.Indices())
				assert.Equal(t, []float32{1, 2}, out.Values().Row(0))
			})

			t.Run("Empty", func(t *testing.T) {
				acc, err := NewAccumulator(10, 4, nil, nil)
				require.NoError(t, err)

				out := variant.fn(kernel, acc)

				assert.True(t, out.Coalesced())
				assert.Equal(t, 0, out.NNZ())
				assert.Equal(t, 4, out.Dim())
			})

			t.Run("Idempotent", func(t *testing.T) {
				values, err := tensor.FromRows([][]float32{{1, 1}, {1, 1}})
				require.NoError(t, err)
				acc, err := NewAccumulator(10, 2, []int64{2, 2}, values)
				require.NoError(t, err)

				once := variant.fn(kernel, acc)
				twice := variant.fn(kernel, once)

				assert.Same(t, once, twice)
			})

			t.Run("NilPanics", func(t *testing.T) {
				assert.PanicsWithValue(t, ErrNilAccumulator, func() {
					variant.fn(kernel, nil)
				})
			})
		})
	}
}

func TestCoalesceMergesAppendedEntries(t *testing.T) {
	for _, variant := range coalesceVariants {
		t.Run(variant.name, func(t *testing.T) {
			kernel, err := New(WithWorkers(4))
			require.NoError(t, err)

			grads, err := tensor.FromRows([][]float32{{1, 1}, {0, 2}})
			require.NoError(t, err)
			acc, err := NewAccumulator(10, 2, []int64{2, 7}, grads)
			require.NoError(t, err)

			noise, err := tensor.FromRows([][]float32{{10, 10}, {5, 5}})
			require.NoError(t, err)
			merged, err := acc.Append([]int64{7, 5}, noise)
			require.NoError(t, err)

			out := variant.fn(kernel, merged)

			assert.Equal(t, []int64{2, 5, 7}, out.Indices())
			want, err := tensor.FromRows([][]float32{{1, 1}, {5, 5}, {10, 12}})
			require.NoError(t, err)
			assert.True(t, out.Values().EqualApprox(want, 1e-6))
		})
	}
}

func TestCoalesceMatchesReference(t *testing.T) {
	rng := testutil.NewRNG(42)
	indices, values := rng.Entries(5000, 100, 16)
	wantIndices, wantValues := testutil.ReferenceCoalesce(indices, values)

	for _, variant := range coalesceVariants {
		for _, workers := range []int{1, 2, 3, 8} {
			t.Run(fmt.Sprintf("%s/Workers%d", variant.name, workers), func(t *testing.T) {
				kernel, err := New(WithWorkers(workers))
				require.NoError(t, err)

				acc, err := NewAccumulator(100, 16, indices, values.Clone())
				require.NoError(t, err)

				out := variant.fn(kernel, acc)

				assert.Equal(t, wantIndices, out.Indices())
				assert.True(t, out.Values().EqualApprox(wantValues, 0.02))
			})
		}
	}
}

func TestCoalesceVariantsAgree(t *testing.T) {
	rng := testutil.NewRNG(7)
	indices, values := rng.Entries(3000, 64, 8)

	kernel, err := New(WithWorkers(4))
	require.NoError(t, err)

	accSort, err := NewAccumulator(64, 8, indices, values.Clone())
	require.NoError(t, err)
	accBags, err := NewAccumulator(64, 8, indices, values.Clone())
	require.NoError(t, err)

	bySort := kernel.CoalesceSort(accSort)
	byBags := kernel.CoalesceBags(accBags)

	assert.Equal(t, bySort.Indices(), byBags.Indices())
	assert.True(t, bySort.Values().EqualApprox(byBags.Values(), 0.02))
}

func TestCoalescePreservesL1OfNonCancellingEntries(t *testing.T) {
	rng := testutil.NewRNG(11)
	indices, values := rng.Entries(4000, 128, 16)

	// Make every element non-negative so coalescing cannot cancel mass.
	data := values.Data()
	for i, v := range data {
		if v < 0 {
			data[i] = -v
		}
	}

	acc, err := NewAccumulator(128, 16, indices, values)
	require.NoError(t, err)
	before := acc.L1Norm()

	kernel, err := New(WithWorkers(8))
	require.NoError(t, err)
	out := kernel.CoalesceSort(acc)

	assert.InEpsilon(t, before, out.L1Norm(), 1e-4)
}

type failingReducer struct{}

func (failingReducer) SumBags(values *tensor.Dense, rowOrder, offsets []int64, workers int) (*tensor.Dense, error) {
	return nil, errors.New("reducer exploded")
}

func TestCoalesceBagsReducerFailurePanics(t *testing.T) {
	kernel, err := New(WithWorkers(2), WithReducer(failingReducer{}))
	require.NoError(t, err)

	values, err := tensor.FromRows([][]float32{{1, 1}})
	require.NoError(t, err)
	acc, err := NewAccumulator(10, 2, []int64{0}, values)
	require.NoError(t, err)

	assert.Panics(t, func() { kernel.CoalesceBags(acc) })
}

func BenchmarkCoalesce(b *testing.B) {
	rng := testutil.NewRNG(1)
	indices, values := rng.Entries(100_000, 10_000, 64)

	for _, variant := range coalesceVariants {
		for _, workers := range []int{1, 4, 8} {
			b.Run(fmt.Sprintf("%s/workers=%d", variant.name, workers), func(b *testing.B) {
				kernel, err := New(WithWorkers(workers))
				if err != nil {
					b.Fatal(err)
				}

				// Coalescing leaves its input untouched, so one
				// accumulator serves every iteration.
				acc, err := NewAccumulator(10_000, 64, indices, values)
				if err != nil {
					b.Fatal(err)
				}

				b.ReportAllocs()
				b.ResetTimer()
				for b.Loop() {
					variant.fn(kernel, acc)
				}
			})
		}
	}
}
