package bag

import "fmt"

// ErrRowOutOfRange indicates a gathered row index outside the value
// matrix.
type ErrRowOutOfRange struct {
	Index int64
	Rows  int
}

func (e *ErrRowOutOfRange) Error() string {
	return fmt.Sprintf("bag: row index %d out of range [0, %d)", e.Index, e.Rows)
}

// ErrInvalidOffsets indicates an offset vector that is not a monotone
// partition of the gathered rows starting at 0.
type ErrInvalidOffsets struct {
	Position int
	Offset   int64
}

func (e *ErrInvalidOffsets) Error() string {
	return fmt.Sprintf("bag: invalid offset %d at position %d", e.Offset, e.Position)
}
