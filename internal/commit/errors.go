package commit

import "errors"

var (
	// ErrStaleSnapshot indicates a commit with no origin snapshot
	ErrStaleSnapshot = errors.New("drag snapshot is missing")

	// ErrWriteFailed wraps a store failure after the optimistic state was rolled back
	ErrWriteFailed = errors.New("could not save card order")
)
