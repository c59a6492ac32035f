package sparsego

import (
	"time"

	"github.com/hupe1980/sparsego/internal/parallel"
	"github.com/hupe1980/sparsego/internal/psort"
	"github.com/hupe1980/sparsego/tensor"
)

// CoalesceSort merges duplicate entries of acc by summation and returns a
// coalesced accumulator with strictly ascending indices. It sorts
// (index, slot) pairs in parallel, finds the segment boundaries with one
// sequential scan, then sums the value rows of each segment with the
// segments split across the workers.
//
// An already coalesced accumulator is returned unchanged. A nil
// accumulator panics with ErrNilAccumulator.
func (k *Kernel) CoalesceSort(acc *Accumulator) *Accumulator {
	if acc == nil {
		panic(ErrNilAccumulator)
	}
	if acc.coalesced {
		return acc
	}
	if acc.NNZ() == 0 {
		return emptyCoalesced(acc)
	}

	start := time.Now()

	pairs := k.sortedPairs(acc)
	sortPhase := time.Since(start)

	// One pass over the sorted pairs yields the distinct indices and the
	// position where each segment of equal indices begins.
	uniq := make([]int64, 0, len(pairs))
	starts := make([]int, 0, len(pairs))
	for i, p := range pairs {
		if i == 0 || p.Key != pairs[i-1].Key {
			uniq = append(uniq, p.Key)
			starts = append(starts, i)
		}
	}
	segments := len(uniq)

	values := acc.Values()
	out := tensor.NewDense(segments, acc.dim)
	parallel.For(segments, k.workers, func(_, lo, hi int) {
		for s := lo; s < hi; s++ {
			end := len(pairs)
			if s+1 < segments {
				end = starts[s+1]
			}
			copy(out.Row(s), values.Row(int(pairs[starts[s]].Pos)))
			for i := starts[s] + 1; i < end; i++ {
				out.AddRowFrom(s, values, int(pairs[i].Pos))
			}
		}
	})

	duration := time.Since(start)
	k.metrics.RecordCoalesce("sort", acc.NNZ(), segments, duration)
	k.logger.LogCoalesce("sort", acc.NNZ(), segments, sortPhase, duration-sortPhase)

	return &Accumulator{
		rows:      acc.rows,
		dim:       acc.dim,
		indices:   uniq,
		values:    out,
		coalesced: true,
	}
}

// CoalesceBags merges duplicate entries of acc by summation, like
// CoalesceSort, but keeps every phase after the pair sort parallel: the
// sorted indices and slots are extracted into separate arrays, segment
// heads are marked and converted to output slots with an exclusive prefix
// sum, the distinct indices and segment offsets are scattered, and the
// per-segment summation is delegated to the configured BagReducer.
//
// An already coalesced accumulator is returned unchanged. A nil
// accumulator panics with ErrNilAccumulator; a failing reducer panics
// with its error, since the bag layout handed to it is valid by
// construction.
func (k *Kernel) CoalesceBags(acc *Accumulator) *Accumulator {
	if acc == nil {
		panic(ErrNilAccumulator)
	}
	if acc.coalesced {
		return acc
	}
	if acc.NNZ() == 0 {
		return emptyCoalesced(acc)
	}

	start := time.Now()

	pairs := k.sortedPairs(acc)
	sortPhase := time.Since(start)

	n := len(pairs)
	keys := make([]int64, n)
	rowOrder := make([]int64, n)
	parallel.For(n, k.workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			keys[i] = pairs[i].Key
			rowOrder[i] = int64(pairs[i].Pos)
		}
	})

	marks := make([]int32, n)
	psort.MarkRuns(keys, marks, k.workers)

	slots := make([]int64, n)
	segments := int(psort.ExclusiveSum(marks, slots, k.workers))

	uniq := make([]int64, segments)
	offsets := make([]int64, segments)
	parallel.For(n, k.workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if marks[i] == 1 {
				uniq[slots[i]] = keys[i]
				offsets[slots[i]] = int64(i)
			}
		}
	})

	summed, err := k.reducer.SumBags(acc.Values(), rowOrder, offsets, k.workers)
	if err != nil {
		panic(err)
	}

	duration := time.Since(start)
	k.metrics.RecordCoalesce("bags", acc.NNZ(), segments, duration)
	k.logger.LogCoalesce("bags", acc.NNZ(), segments, sortPhase, duration-sortPhase)

	return &Accumulator{
		rows:      acc.rows,
		dim:       acc.dim,
		indices:   uniq,
		values:    summed,
		coalesced: true,
	}
}

// sortedPairs couples every entry index with its slot and sorts the pairs
// by index. Ties keep arbitrary slot order; summation is commutative up
// to float rounding, so segment results do not depend on it.
func (k *Kernel) sortedPairs(acc *Accumulator) []psort.Pair {
	indices := acc.Indices()
	pairs := make([]psort.Pair, len(indices))
	parallel.For(len(pairs), k.workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			pairs[i] = psort.Pair{Key: indices[i], Pos: int32(i)}
		}
	})

	psort.Sort(pairs, k.workers, psort.ByKey)

	return pairs
}

func emptyCoalesced(acc *Accumulator) *Accumulator {
	return &Accumulator{
		rows:      acc.rows,
		dim:       acc.dim,
		indices:   []int64{},
		values:    tensor.NewDense(0, acc.dim),
		coalesced: true,
	}
}
