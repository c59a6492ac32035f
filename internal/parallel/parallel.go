// Package parallel provides the fork-join primitives under every kernel
// in this module. All helpers block until the last worker returns; workers
// own disjoint contiguous ranges of the output, so no synchronization
// beyond the final join is needed.
package parallel

import "sync"

// Regions runs fn once per worker on its own goroutine and waits for all
// of them to finish. The worker id passed to fn is in [0, workers).
// With workers <= 1 fn runs on the calling goroutine.
func Regions(workers int, fn func(worker int)) {
	if workers <= 1 {
		fn(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			fn(w)
		}()
	}
	wg.Wait()
}

// For splits [0, n) into one contiguous range per worker and runs fn for
// every non-empty range, then waits for all of them. Each worker owns
// unit = n/workers items; the last worker additionally absorbs the
// n%workers remainder. fn receives the worker id together with its
// half-open [start, end) range, so callers can address per-worker state
// by id.
func For(n, workers int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 {
		fn(0, 0, n)
		return
	}

	unit := n / workers

	var wg sync.WaitGroup
	for w := range workers {
		start := w * unit
		end := start + unit
		if w == workers-1 {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(w, start, end)
		}()
	}
	wg.Wait()
}
