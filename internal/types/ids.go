package types

import "github.com/google/uuid"

// ID types give semantic meaning to the opaque strings the store hands out.
// They are compared lexicographically when ordering needs a tiebreak.

// OwnerID identifies whose board a card belongs to
type OwnerID string

// CardID identifies a unique card across all owners
type CardID string

// LaneID identifies one of the fixed, ordered lanes of a board
type LaneID string

// NewCardID returns a fresh random card identifier
func NewCardID() CardID {
	return CardID(uuid.NewString())
}

func (id OwnerID) String() string {
	return string(id)
}

func (id CardID) String() string {
	return string(id)
}

func (id LaneID) String() string {
	return string(id)
}
