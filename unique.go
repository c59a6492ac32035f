package sparsego

import (
	"slices"
	"time"

	"github.com/hupe1980/sparsego/internal/parallel"
	"github.com/hupe1980/sparsego/internal/psort"
)

// Unique returns the distinct values of indices in ascending order. The
// input is left untouched; a copy is sorted across the workers and the
// first element of every run of equal values is scattered to its final
// slot. The result is never nil.
func (k *Kernel) Unique(indices []int64) []int64 {
	start := time.Now()

	sorted := slices.Clone(indices)
	psort.Sort(sorted, k.workers, func(a, b int64) bool { return a < b })

	out := k.dedupSorted(sorted)

	duration := time.Since(start)
	k.metrics.RecordUnique(len(indices), len(out), duration)
	k.logger.LogUnique(len(indices), len(out), duration)

	return out
}

// dedupSorted extracts the run heads of an ascending slice: mark each
// head, turn the marks into output slots with an exclusive prefix sum,
// then scatter the heads in parallel.
func (k *Kernel) dedupSorted(sorted []int64) []int64 {
	n := len(sorted)
	if n == 0 {
		return []int64{}
	}

	marks := make([]int32, n)
	psort.MarkRuns(sorted, marks, k.workers)

	slots := make([]int64, n)
	distinct := psort.ExclusiveSum(marks, slots, k.workers)

	out := make([]int64, distinct)
	parallel.For(n, k.workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if marks[i] == 1 {
				out[slots[i]] = sorted[i]
			}
		}
	})

	return out
}
