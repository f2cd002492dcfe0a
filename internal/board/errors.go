package board

import "errors"

// ErrReadOnly indicates a drag on a board that only renders
var ErrReadOnly = errors.New("board is read-only")
