package psort

import "github.com/hupe1980/sparsego/internal/parallel"

// MarkRuns writes 1 into marks[i] when keys[i] starts a new run of equal
// keys and 0 otherwise. keys[0] always starts a run. keys must already be
// sorted for the marks to identify segments; marks must have the same
// length as keys.
func MarkRuns(keys []int64, marks []int32, workers int) {
	if len(marks) != len(keys) {
		panic("psort: marks length does not match keys")
	}

	parallel.For(len(keys), workers, func(_, start, end int) {
		for i := start; i < end; i++ {
			if i == 0 || keys[i] != keys[i-1] {
				marks[i] = 1
			} else {
				marks[i] = 0
			}
		}
	})
}

// ExclusiveSum writes the exclusive prefix sum of values into out and
// returns the grand total: out[i] holds the sum of values[:i]. It runs
// the usual two-pass block scheme, summing each worker's block, folding
// the block totals into per-block offsets on the calling goroutine, and
// rescanning every block with its offset applied.
func ExclusiveSum(values []int32, out []int64, workers int) int64 {
	n := len(values)
	if len(out) != n {
		panic("psort: out length does not match values")
	}
	if n == 0 {
		return 0
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		var sum int64
		for i, v := range values {
			out[i] = sum
			sum += int64(v)
		}
		return sum
	}

	blockSums := make([]int64, workers)
	parallel.For(n, workers, func(worker, start, end int) {
		var sum int64
		for i := start; i < end; i++ {
			sum += int64(values[i])
		}
		blockSums[worker] = sum
	})

	var total int64
	offsets := make([]int64, workers)
	for w, s := range blockSums {
		offsets[w] = total
		total += s
	}

	parallel.For(n, workers, func(worker, start, end int) {
		sum := offsets[worker]
		for i := start; i < end; i++ {
			out[i] = sum
			sum += int64(values[i])
		}
	})

	return total
}
