// Package testutil provides testing utilities for sparsego.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random matrices and index
// distributions, and sequential reference implementations to verify the
// parallel kernels against.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	grads := rng.GaussianMatrix(1000, 64, 1.0)   // standard normal rows
//	hot := rng.ZipfIndices(1000, 100, 1.2)       // duplicate-heavy indices
//
// # Ground Truth
//
//	uniq := testutil.ReferenceUnique(indices)
//	idx, sums := testutil.ReferenceCoalesce(indices, values)
package testutil
