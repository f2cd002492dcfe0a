// Package commit converts a finished drag into the minimal set of row updates,
// applies them optimistically and restores the origin snapshot when the store
// rejects the batch.
package commit

import (
	"fmt"

	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Drop describes a released drag
type Drop struct {
	CardID types.CardID
	Target drag.Target

	// ReportedOrder is the final order of the dragged card's lane as shown by
	// the rendering layer, when it animates reorders itself. It is only used
	// for same-lane drops and only when it is a permutation of that lane.
	ReportedOrder []types.CardID
}

// Plan is the outcome of planning a drop against its origin snapshot
type Plan struct {
	Drop      Drop
	Move      drag.Move
	Before    []models.Card // origin snapshot, the rollback target
	Candidate []models.Card // full card set after the drop
	Updates   []models.CardUpdate
}

// IsNoop reports whether the drop changes nothing and needs no writes
func (p *Plan) IsNoop() bool {
	return len(p.Updates) == 0
}

// PlanDrop diffs the drop against snapshot. Self-drops, drops on nothing and
// drops that leave every card in place produce a plan with no updates.
func PlanDrop(snapshot *drag.Snapshot, drop Drop) (*Plan, error) {
	if snapshot == nil {
		return nil, ErrStaleSnapshot
	}

	move, err := drag.Resolve(snapshot, drop.CardID, drop.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve drop of %s on %s: %w", drop.CardID, drop.Target, err)
	}

	if move.Kind == drag.WithinLane && len(drop.ReportedOrder) > 0 {
		if reported, ok := reorder(snapshot.Column(move.From), drop.ReportedOrder); ok {
			move.Source = reported
			move.Target = reported
		}
	}

	before := snapshot.Cards()
	candidate := move.Candidate(before)
	return &Plan{
		Drop:      drop,
		Move:      move,
		Before:    before,
		Candidate: candidate,
		Updates:   ordering.Diff(before, candidate),
	}, nil
}

// reorder arranges col in the order of ids. It fails unless ids is exactly a
// permutation of the lane.
func reorder(col []models.Card, ids []types.CardID) ([]models.Card, bool) {
	if len(ids) != len(col) {
		return nil, false
	}
	out := make([]models.Card, 0, len(col))
	for _, id := range ids {
		i := ordering.IndexOf(col, id)
		if i < 0 || ordering.IndexOf(out, id) >= 0 {
			return nil, false
		}
		out = append(out, col[i])
	}
	return out, true
}
