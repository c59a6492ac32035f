package sparsego

import (
	"math/rand"
	"time"

	"github.com/hupe1980/sparsego/internal/parallel"
	"github.com/hupe1980/sparsego/tensor"
)

// SampleGaussian allocates a (rows x dim) matrix and fills it with draws
// from N(0, std^2). The rows are split across the workers in contiguous
// blocks of rows/workers each, with the last worker absorbing the
// remainder, and every worker draws from its own stream seeded by the
// kernel's SeedSource. It panics when rows is negative or dim is not
// positive.
func (k *Kernel) SampleGaussian(std float64, rows, dim int) *tensor.Dense {
	if rows < 0 || dim < 1 {
		panic(&ErrInvalidShape{Rows: rows, Dim: dim})
	}

	start := time.Now()

	out := tensor.NewDense(rows, dim)
	k.fillGaussian(out, std)

	duration := time.Since(start)
	k.metrics.RecordSample(rows, dim, duration)
	k.logger.LogSample(rows, dim, duration)

	return out
}

// SampleGaussianRows allocates a (len(stds)+extra x dim) matrix whose row
// i is drawn from N(0, stds[i]^2) for i < len(stds), while the extra
// trailing rows keep unit variance. Row updates for fresh embeddings and
// headroom rows for table growth are sampled in one pass this way. It
// panics when extra is negative or dim is not positive.
func (k *Kernel) SampleGaussianRows(stds []float64, dim, extra int) *tensor.Dense {
	if extra < 0 || dim < 1 {
		panic(&ErrInvalidShape{Rows: extra, Dim: dim})
	}

	start := time.Now()

	rows := len(stds) + extra
	out := tensor.NewDense(rows, dim)
	k.fillGaussian(out, 1)

	parallel.For(len(stds), k.workers, func(_, lo, hi int) {
		for r := lo; r < hi; r++ {
			out.ScaleRow(r, float32(stds[r]))
		}
	})

	duration := time.Since(start)
	k.metrics.RecordSample(rows, dim, duration)
	k.logger.LogSample(rows, dim, duration)

	return out
}

// fillGaussian fills every element of out with an independent draw from
// N(0, std^2). Seeds are requested on the calling goroutine, one per
// worker in worker order, so a deterministic SeedSource yields the same
// matrix on every run with the same worker count.
func (k *Kernel) fillGaussian(out *tensor.Dense, std float64) {
	seeds := make([]int64, k.workers)
	for w := range seeds {
		seeds[w] = k.seeds.Seed()
	}

	parallel.For(out.Rows(), k.workers, func(worker, lo, hi int) {
		rng := rand.New(rand.NewSource(seeds[worker]))
		for r := lo; r < hi; r++ {
			row := out.Row(r)
			for j := range row {
				row[j] = float32(rng.NormFloat64() * std)
			}
		}
	})
}
