package sparsego

import (
	"github.com/hupe1980/sparsego/bag"
	"github.com/hupe1980/sparsego/tensor"
)

// Compile-time check that the default reducer satisfies BagReducer.
var _ BagReducer = bag.Reducer{}

// BagReducer sums gathered value rows into one output row per bag. It is
// the reduction primitive behind CoalesceBags; see bag.Sum for the
// reference implementation and the offset conventions.
type BagReducer interface {
	SumBags(values *tensor.Dense, rowOrder, offsets []int64, workers int) (*tensor.Dense, error)
}

// Kernel runs the sampling, dedup and coalescing operations with a fixed
// worker count. Kernels are immutable after construction and safe for
// concurrent use as long as the configured SeedSource is.
//
// Operations panic on violated preconditions: shapes reaching a kernel
// are produced by code, not data, so a mismatch is a programming error.
// Validate untrusted inputs with NewAccumulator first.
type Kernel struct {
	workers int
	seeds   SeedSource
	reducer BagReducer
	metrics MetricsCollector
	logger  *Logger
}

// New creates a Kernel. By default it uses runtime.GOMAXPROCS(0) workers,
// the process-wide seed source, the bag package reducer, and neither
// logging nor metrics.
func New(optFns ...Option) (*Kernel, error) {
	opts := applyOptions(optFns)

	if opts.workers < 1 {
		return nil, &ErrInvalidWorkers{Workers: opts.workers}
	}

	return &Kernel{
		workers: opts.workers,
		seeds:   opts.seedSource,
		reducer: opts.reducer,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}, nil
}

// Workers returns the configured worker count.
func (k *Kernel) Workers() int {
	return k.workers
}
