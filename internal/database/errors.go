package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ErrUnknownDriver indicates an unsupported database.driver setting
var ErrUnknownDriver = errors.New("unknown database driver")

// RowError is one failed write of a batch
type RowError struct {
	ID  types.CardID
	Err error
}

// BatchError reports the rows of an UpdateMany that failed. The other rows
// were written.
type BatchError struct {
	Total  int
	Failed []RowError
}

func (e *BatchError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		ids[i] = string(f.ID)
	}
	msg := fmt.Sprintf("%d of %d card updates failed (%s)", len(e.Failed), e.Total, strings.Join(ids, ", "))
	if len(e.Failed) > 0 {
		msg += ": " + e.Failed[0].Err.Error()
	}
	return msg
}

// Unwrap exposes every row cause to errors.Is and errors.As
func (e *BatchError) Unwrap() []error {
	out := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		out[i] = f.Err
	}
	return out
}

// IDs returns the ids of the failed rows
func (e *BatchError) IDs() []types.CardID {
	out := make([]types.CardID, len(e.Failed))
	for i, f := range e.Failed {
		out[i] = f.ID
	}
	return out
}
