package ordering

import "errors"

var (
	// ErrIndexOutOfRange indicates a move referencing a card or index that is
	// not part of the sequence it was computed against
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotDense indicates a lane whose positions are not exactly 0..n-1
	ErrNotDense = errors.New("ordering is not dense")
)
