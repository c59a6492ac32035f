package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"sync"

	"github.com/hupe1980/sparsego/tensor"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random int64 in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// GaussianMatrix generates a (rows x dim) matrix with values drawn from
// N(0, std^2). Locks only once per call.
func (r *RNG) GaussianMatrix(rows, dim int, std float64) *tensor.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := tensor.NewDense(rows, dim)
	data := out.Data()
	for i := range data {
		data[i] = float32(r.rand.NormFloat64() * std)
	}

	return out
}

// UniformIndices generates n indices uniformly distributed in [0, rows).
func (r *RNG) UniformIndices(n int, rows int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	indices := make([]int64, n)
	for i := range indices {
		indices[i] = r.rand.Int63n(rows)
	}

	return indices
}

// ZipfIndices generates n indices in [0, rows) with Zipfian distribution.
// P(k) ∝ 1/k^s where s is the skew parameter; s=1.0 gives standard Zipf,
// s=1.5 gives heavy-tail (80/20 rule). Embedding-row access in real
// training data is distributed this way, with a few hot rows hit by most
// entries, so the coalescers see long segments.
func (r *RNG) ZipfIndices(n, rows int, s float64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	indices := make([]int64, n)
	if rows <= 1 {
		return indices
	}

	// Cumulative weights (harmonic numbers with exponent s), built once;
	// each draw is an inverse transform by binary search.
	cum := make([]float64, rows)
	var hns float64
	for k := 1; k <= rows; k++ {
		hns += 1.0 / math.Pow(float64(k), s)
		cum[k-1] = hns
	}

	for i := range indices {
		u := r.rand.Float64() * hns
		indices[i] = int64(sort.SearchFloat64s(cum, u))
	}

	return indices
}

// Entries generates a random uncoalesced entry list: n Zipf-distributed
// indices in [0, rows) plus one standard-normal value row per entry.
func (r *RNG) Entries(n, rows, dim int) ([]int64, *tensor.Dense) {
	indices := r.ZipfIndices(n, rows, 1.2)
	values := r.GaussianMatrix(n, dim, 1)
	return indices, values
}

// ReferenceUnique computes the sorted distinct values of indices
// sequentially with a map. Ground truth for the parallel dedup.
func ReferenceUnique(indices []int64) []int64 {
	seen := make(map[int64]struct{}, len(indices))
	for _, idx := range indices {
		seen[idx] = struct{}{}
	}

	out := make([]int64, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	slices.Sort(out)

	return out
}

// ReferenceCoalesce merges duplicate entries sequentially with a map,
// accumulating in float64. Ground truth for the parallel coalescers;
// compare values with a tolerance, since the kernels sum in float32 and
// in a different order.
func ReferenceCoalesce(indices []int64, values *tensor.Dense) ([]int64, *tensor.Dense) {
	dim := values.Cols()

	sums := make(map[int64][]float64, len(indices))
	for i, idx := range indices {
		row := sums[idx]
		if row == nil {
			row = make([]float64, dim)
			sums[idx] = row
		}
		for j, v := range values.Row(i) {
			row[j] += float64(v)
		}
	}

	uniq := make([]int64, 0, len(sums))
	for idx := range sums {
		uniq = append(uniq, idx)
	}
	slices.Sort(uniq)

	out := tensor.NewDense(len(uniq), dim)
	for s, idx := range uniq {
		dst := out.Row(s)
		for j, v := range sums[idx] {
			dst[j] = float32(v)
		}
	}

	return uniq, out
}
