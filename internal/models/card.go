package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Card is a single item on the board.
// Only Lane and Position are interpreted by the ordering core; the rest is
// carried through untouched.
type Card struct {
	ID          types.CardID  `json:"id"`
	OwnerID     types.OwnerID `json:"owner_id"`
	Lane        types.LaneID  `json:"lane"`
	Position    int           `json:"position"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	FeatureID   string        `json:"feature_id,omitempty"` // optional reference to a roadmap feature
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// GetID returns the card id (used by the CLI quiet output mode)
func (c *Card) GetID() string {
	return string(c.ID)
}

// CardUpdate is one row write produced by a commit.
// Lane is nil when the card stays in its current lane.
type CardUpdate struct {
	ID       types.CardID  `json:"id"`
	Position int           `json:"position"`
	Lane     *types.LaneID `json:"lane,omitempty"`
}

// Placement is the part of a card the ordering core owns
type Placement struct {
	Lane     types.LaneID
	Position int
}

// Placements maps every card to its lane and position.
// Two card sets are structurally equal for rollback purposes when their
// placements are equal.
func Placements(cards []Card) map[types.CardID]Placement {
	out := make(map[types.CardID]Placement, len(cards))
	for _, c := range cards {
		out[c.ID] = Placement{Lane: c.Lane, Position: c.Position}
	}
	return out
}

// CloneCards returns a copy of cards that shares no backing array with the input
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
