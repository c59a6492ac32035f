// Package sparsego provides parallel maintenance kernels for the sparse
// gradient state of embedding-table training.
//
// Embedding gradients arrive as COO accumulators: a list of row indices
// into the table plus one dense gradient row per entry, with duplicate
// indices whenever a batch touches the same row more than once. The
// kernels in this package keep that state workable on many cores:
//
//   - Gaussian sampling of dense row blocks for noise injection and
//     fresh-row initialization
//   - Deduplication of touched row indices
//   - Coalescing of duplicate accumulator entries by summation, with a
//     sort-based and a bag-reduction variant
//
// All operations fan work out over a fixed number of workers configured
// once per Kernel. Results are deterministic given a deterministic seed
// source and a fixed worker count; across worker counts they agree up to
// float rounding.
//
// # Quick Start
//
//	kernel, _ := sparsego.New(sparsego.WithWorkers(8))
//
//	// Noise for 100k rows of a 64-dim table, std 0.01.
//	noise := kernel.SampleGaussian(0.01, 100_000, 64)
//
//	// Rows touched by the batch, deduplicated.
//	rows := kernel.Unique(batchIndices)
//
//	// Merge duplicate gradient entries.
//	acc, _ := sparsego.NewAccumulator(100_000, 64, batchIndices, grads)
//	acc = kernel.CoalesceSort(acc)
//
// # Coalescing Variants
//
// CoalesceSort finds segment boundaries with one sequential scan over the
// sorted entries and parallelizes the per-segment summation. It is the
// simple variant and fast when segments are plentiful.
//
// CoalesceBags keeps every phase after the sort parallel by marking
// segment heads, prefix-summing them into output slots, and handing the
// per-segment summation to a pluggable BagReducer. Use it when the
// sequential boundary scan shows up in profiles, or to substitute a
// custom reduction.
//
// Both variants produce the same accumulator up to float rounding and
// set its Coalesced flag, making further coalesce calls free.
package sparsego
