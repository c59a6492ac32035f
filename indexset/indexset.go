// Package indexset tracks sets of embedding-table row indices between
// training steps, backed by Roaring bitmaps. Typical uses are recording
// which rows a batch touched and computing which rows of the next batch
// have not been seen yet.
package indexset

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is a set of non-negative row indices wrapping a 64-bit Roaring
// bitmap, so both dense batches and sparse tails stay compact. A Set is
// not safe for concurrent mutation.
type Set struct {
	rb *roaring64.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring64.New()}
}

// FromIndices creates a set holding every index in indices. Duplicates
// collapse. Negative indices cannot address a table row and are rejected.
func FromIndices(indices []int64) (*Set, error) {
	s := New()
	for _, idx := range indices {
		if idx < 0 {
			return nil, &ErrNegativeIndex{Index: idx}
		}
		s.rb.Add(uint64(idx))
	}
	return s, nil
}

// Add inserts idx into the set. Negative indices panic; validate
// untrusted input with FromIndices instead.
func (s *Set) Add(idx int64) {
	if idx < 0 {
		panic(&ErrNegativeIndex{Index: idx})
	}
	s.rb.Add(uint64(idx))
}

// Remove deletes idx from the set.
func (s *Set) Remove(idx int64) {
	if idx < 0 {
		return
	}
	s.rb.Remove(uint64(idx))
}

// Contains reports whether idx is in the set.
func (s *Set) Contains(idx int64) bool {
	if idx < 0 {
		return false
	}
	return s.rb.Contains(uint64(idx))
}

// Len returns the number of indices in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set holds no indices.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// Union adds every index of other to s.
func (s *Set) Union(other *Set) {
	s.rb.Or(other.rb)
}

// Intersect removes every index of s that is not in other.
func (s *Set) Intersect(other *Set) {
	s.rb.And(other.rb)
}

// Diff removes every index of other from s. Use it on a Clone to compute
// a set difference without mutating the receiver.
func (s *Set) Diff(other *Set) {
	s.rb.AndNot(other.rb)
}

// Clear removes all indices from the set.
func (s *Set) Clear() {
	s.rb.Clear()
}

// ToIndices returns the indices in ascending order. The result is never
// nil.
func (s *Set) ToIndices() []int64 {
	out := make([]int64, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}

// Iterator returns an ascending iterator over the set.
func (s *Set) Iterator() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int64(it.Next())) {
				return
			}
		}
	}
}

// ErrNegativeIndex indicates an index below zero.
type ErrNegativeIndex struct {
	Index int64
}

func (e *ErrNegativeIndex) Error() string {
	return fmt.Sprintf("indexset: negative index %d", e.Index)
}
