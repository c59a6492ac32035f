// Package psort implements the parallel sorting and run-detection
// machinery shared by the dedup and coalescing kernels.
package psort

import (
	"sort"

	"github.com/hupe1980/sparsego/internal/parallel"
)

// Pair couples an accumulator index with the slot it came from, so the
// matching value row can still be located after the pairs are sorted by
// index. Pos is 32-bit; accumulator constructors enforce the entry-count
// cap that makes this safe.
type Pair struct {
	Key int64
	Pos int32
}

// ByKey orders pairs by Key. Pairs with equal keys stay in no particular
// order.
func ByKey(a, b Pair) bool { return a.Key < b.Key }

// Sort sorts data in place using up to workers goroutines: every worker
// sorts one contiguous chunk, then neighbouring chunks are merged
// pairwise over log2(workers) rounds, ping-ponging between data and a
// scratch buffer. The sort is not stable.
func Sort[T any](data []T, workers int, less func(a, b T) bool) {
	n := len(data)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		sort.Slice(data, func(i, j int) bool { return less(data[i], data[j]) })
		return
	}

	// One sorted run per worker.
	bounds := make([]int, workers+1)
	unit := n / workers
	for w := range workers {
		bounds[w] = w * unit
	}
	bounds[workers] = n

	parallel.Regions(workers, func(w int) {
		chunk := data[bounds[w]:bounds[w+1]]
		sort.Slice(chunk, func(i, j int) bool { return less(chunk[i], chunk[j]) })
	})

	scratch := make([]T, n)
	src, dst := data, scratch
	for len(bounds) > 2 {
		type span struct{ lo, mid, hi int }
		var merges []span
		for i := 0; i+2 < len(bounds); i += 2 {
			merges = append(merges, span{bounds[i], bounds[i+1], bounds[i+2]})
		}

		parallel.Regions(len(merges), func(k int) {
			m := merges[k]
			mergeRuns(dst[m.lo:m.hi], src[m.lo:m.mid], src[m.mid:m.hi], less)
		})

		// A trailing unpaired run is carried over unchanged.
		if (len(bounds)-1)%2 == 1 {
			lo, hi := bounds[len(bounds)-2], bounds[len(bounds)-1]
			copy(dst[lo:hi], src[lo:hi])
		}

		var next []int
		for i := 0; i < len(bounds); i += 2 {
			next = append(next, bounds[i])
		}
		if next[len(next)-1] != n {
			next = append(next, n)
		}
		bounds = next
		src, dst = dst, src
	}

	if &src[0] != &data[0] {
		copy(data, src)
	}
}

func mergeRuns[T any](dst, a, b []T, less func(x, y T) bool) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if less(b[j], a[i]) {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
