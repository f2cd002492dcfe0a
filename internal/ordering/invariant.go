package ordering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// CheckDensity verifies that every lane of cards, in SortColumn order, holds
// positions exactly 0..n-1 and that no card id appears twice.
func CheckDensity(cards []models.Card) error {
	seen := make(map[types.CardID]struct{}, len(cards))
	lanes := make([]types.LaneID, 0)
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: card %s appears more than once", ErrNotDense, c.ID)
		}
		seen[c.ID] = struct{}{}
		if !slices.Contains(lanes, c.Lane) {
			lanes = append(lanes, c.Lane)
		}
	}

	for _, lane := range lanes {
		for i, c := range SortColumn(cards, lane) {
			if c.Position != i {
				return fmt.Errorf("%w: lane %s has position %d at index %d", ErrNotDense, lane, c.Position, i)
			}
		}
	}
	return nil
}

// Normalize renumbers every lane present in cards so positions are dense,
// keeping the current SortColumn order.
func Normalize(cards []models.Card) []models.Card {
	out := models.CloneCards(cards)
	lanes := make([]types.LaneID, 0)
	for _, c := range cards {
		if !slices.Contains(lanes, c.Lane) {
			lanes = append(lanes, c.Lane)
		}
	}
	for _, lane := range lanes {
		out = Apply(out, lane, SortColumn(out, lane))
	}
	return out
}

// Diff returns one update per card whose lane or position differs between
// before and after. The lane is only set on updates that change it. Cards
// present in only one of the sets are ignored. Updates are sorted by id so
// batches are deterministic.
func Diff(before, after []models.Card) []models.CardUpdate {
	prev := models.Placements(before)

	var updates []models.CardUpdate
	for _, c := range after {
		old, ok := prev[c.ID]
		if !ok {
			continue
		}
		if old.Lane == c.Lane && old.Position == c.Position {
			continue
		}
		u := models.CardUpdate{ID: c.ID, Position: c.Position}
		if old.Lane != c.Lane {
			lane := c.Lane
			u.Lane = &lane
		}
		updates = append(updates, u)
	}

	slices.SortFunc(updates, func(a, b models.CardUpdate) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return updates
}
