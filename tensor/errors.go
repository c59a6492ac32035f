package tensor

import "fmt"

// ErrRowOutOfRange indicates a row index outside the matrix.
type ErrRowOutOfRange struct {
	Row  int
	Rows int
}

func (e *ErrRowOutOfRange) Error() string {
	return fmt.Sprintf("tensor: row %d out of range [0, %d)", e.Row, e.Rows)
}

// ErrShapeMismatch indicates an element-count mismatch in a bulk copy.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("tensor: expected %d elements, got %d", e.Expected, e.Actual)
}
