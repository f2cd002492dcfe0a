package drag

import (
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// MoveKind classifies what a drop on a target would do
type MoveKind int

const (
	// NoMove covers self-targets, no target, unknown targets and the origin lane
	NoMove MoveKind = iota
	// WithinLane reorders the dragged card inside its own lane
	WithinLane
	// AcrossLanes moves the dragged card into another lane
	AcrossLanes
)

// Move is a resolved drop: the new sequences of the lanes it touches.
// For WithinLane, Source and Target are the same sequence.
type Move struct {
	Kind   MoveKind
	CardID types.CardID
	From   types.LaneID
	To     types.LaneID
	Source []models.Card
	Target []models.Card
}

// Resolve computes the move for dropping cardID on target, against snapshot.
// Targets that do not resolve to a card or lane in the snapshot yield NoMove.
// An error means the dragged card itself is missing from the snapshot.
func Resolve(snapshot *Snapshot, cardID types.CardID, target Target) (Move, error) {
	if snapshot == nil {
		return Move{}, ErrNoSnapshot
	}
	dragged, ok := snapshot.Card(cardID)
	if !ok {
		return Move{}, fmt.Errorf("%w: card %s not in snapshot", ordering.ErrIndexOutOfRange, cardID)
	}
	noop := Move{Kind: NoMove, CardID: cardID, From: dragged.Lane, To: dragged.Lane}

	switch target.Kind {
	case TargetCard:
		if target.CardID() == cardID {
			return noop, nil
		}
		over, ok := snapshot.Card(target.CardID())
		if !ok {
			return noop, nil
		}
		if over.Lane == dragged.Lane {
			col := snapshot.Column(dragged.Lane)
			reordered, err := ordering.MoveWithinColumn(col, ordering.IndexOf(col, cardID), ordering.IndexOf(col, over.ID))
			if err != nil {
				return Move{}, err
			}
			return Move{Kind: WithinLane, CardID: cardID, From: dragged.Lane, To: dragged.Lane, Source: reordered, Target: reordered}, nil
		}
		targetCol := snapshot.Column(over.Lane)
		return across(snapshot, dragged, over.Lane, ordering.IndexOf(targetCol, over.ID))

	case TargetLane:
		lane := target.LaneID()
		if lane == dragged.Lane || lane == "" {
			return noop, nil
		}
		return across(snapshot, dragged, lane, len(snapshot.Column(lane)))

	default:
		return noop, nil
	}
}

func across(snapshot *Snapshot, dragged models.Card, lane types.LaneID, insertIndex int) (Move, error) {
	src, tgt, err := ordering.MoveAcrossColumns(dragged, snapshot.Column(dragged.Lane), snapshot.Column(lane), lane, insertIndex)
	if err != nil {
		return Move{}, err
	}
	return Move{Kind: AcrossLanes, CardID: dragged.ID, From: dragged.Lane, To: lane, Source: src, Target: tgt}, nil
}

// Candidate merges the move into a copy of cards, renumbering every lane the
// move touches. NoMove returns an unchanged copy.
func (m Move) Candidate(cards []models.Card) []models.Card {
	switch m.Kind {
	case WithinLane:
		return ordering.Apply(cards, m.From, m.Source)
	case AcrossLanes:
		out := ordering.Apply(cards, m.From, m.Source)
		return ordering.Apply(out, m.To, m.Target)
	default:
		return models.CloneCards(cards)
	}
}
