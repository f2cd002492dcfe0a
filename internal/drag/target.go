package drag

import (
	"fmt"

	"github.com/thenoetrevino/lanes/internal/types"
)

// TargetKind says what a pointer is currently over
type TargetKind int

const (
	// TargetNone means the pointer is outside every droppable surface
	TargetNone TargetKind = iota
	// TargetCard means the pointer is over another card
	TargetCard
	// TargetLane means the pointer is over a lane body (typically an empty one)
	TargetLane
)

// Target is the current over-target of a drag. Its value doubles as the
// preview signature: two equal targets produce the same preview.
type Target struct {
	Kind TargetKind
	ID   string
}

// None is the zero target
var None = Target{}

// OverCard builds a card target
func OverCard(id types.CardID) Target {
	return Target{Kind: TargetCard, ID: string(id)}
}

// OverLane builds a lane target
func OverLane(lane types.LaneID) Target {
	return Target{Kind: TargetLane, ID: string(lane)}
}

// IsNone reports whether the target points at nothing droppable
func (t Target) IsNone() bool {
	return t.Kind == TargetNone || t.ID == ""
}

// CardID returns the target as a card id
func (t Target) CardID() types.CardID {
	return types.CardID(t.ID)
}

// LaneID returns the target as a lane id
func (t Target) LaneID() types.LaneID {
	return types.LaneID(t.ID)
}

func (t Target) String() string {
	switch t.Kind {
	case TargetCard:
		return fmt.Sprintf("card:%s", t.ID)
	case TargetLane:
		return fmt.Sprintf("lane:%s", t.ID)
	default:
		return "none"
	}
}
