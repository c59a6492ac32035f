package sparsego

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilAccumulator is the panic value of kernel operations that
	// receive a nil accumulator.
	ErrNilAccumulator = errors.New("accumulator must not be nil")
)

// ErrInvalidWorkers indicates a worker count below 1.
type ErrInvalidWorkers struct {
	Workers int
}

func (e *ErrInvalidWorkers) Error() string {
	return fmt.Sprintf("invalid worker count: %d", e.Workers)
}

// ErrInvalidShape indicates an impossible matrix shape request.
type ErrInvalidShape struct {
	Rows int
	Dim  int
}

func (e *ErrInvalidShape) Error() string {
	return fmt.Sprintf("invalid shape (%d, %d)", e.Rows, e.Dim)
}

// ErrDimensionMismatch indicates a gradient-row dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrLengthMismatch indicates that the index list and the value matrix
// disagree on the number of entries.
type ErrLengthMismatch struct {
	Indices int
	Values  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d indices vs %d value rows", e.Indices, e.Values)
}

// ErrIndexOutOfRange indicates an entry index outside the embedding
// table.
type ErrIndexOutOfRange struct {
	Index int64
	Rows  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Rows)
}

// ErrTooManyEntries indicates an accumulator too large for the 32-bit
// slot bookkeeping the coalescers use.
type ErrTooManyEntries struct {
	Entries int
}

func (e *ErrTooManyEntries) Error() string {
	return fmt.Sprintf("too many entries: %d exceeds %d", e.Entries, math.MaxInt32)
}
