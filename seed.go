package sparsego

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// SeedSource supplies the seeds for per-worker random streams. A kernel
// operation draws one seed per worker on the calling goroutine before the
// parallel region starts, so workers never touch the source themselves.
// Implementations must be safe for concurrent use when the Kernel is
// shared between goroutines.
type SeedSource interface {
	// Seed returns the next seed.
	Seed() int64
}

// lockedSeedSource hands out seeds from a private math/rand stream.
type lockedSeedSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSeedSource creates a deterministic SeedSource: the same initial seed
// yields the same sequence of per-worker seeds, which together with a
// fixed worker count makes sampling reproducible.
func NewSeedSource(seed int64) SeedSource {
	return &lockedSeedSource{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed implements SeedSource.
func (s *lockedSeedSource) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Int63()
}

// defaultSeedSource seeds every Kernel that does not configure its own
// source. It is initialized once from crypto/rand, so separate processes
// sample independent noise by default.
var defaultSeedSource = NewSeedSource(cryptoSeed())

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
