// Package ordering defines what a valid card ordering is and computes the
// renumbering for single-lane and cross-lane moves. Nothing here performs I/O
// or mutates its inputs.
package ordering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// compareCards orders by (position asc, id asc). The id tiebreak keeps the
// order total when two rows transiently share a position.
func compareCards(a, b models.Card) int {
	if a.Position != b.Position {
		if a.Position < b.Position {
			return -1
		}
		return 1
	}
	return strings.Compare(string(a.ID), string(b.ID))
}

// SortColumn returns the cards of lane in render order
func SortColumn(cards []models.Card, lane types.LaneID) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.Lane == lane {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, compareCards)
	return out
}

// Group buckets cards per lane of the set, each bucket sorted by SortColumn.
// Lanes without cards map to an empty, non-nil slice. Cards whose lane is not
// in the set are dropped.
func Group(cards []models.Card, lanes models.LaneSet) map[types.LaneID][]models.Card {
	out := make(map[types.LaneID][]models.Card, len(lanes))
	for _, lane := range lanes {
		out[lane] = SortColumn(cards, lane)
	}
	return out
}

// Renumber assigns 0..n-1 in sequence order
func Renumber(ordered []models.Card) map[types.CardID]int {
	out := make(map[types.CardID]int, len(ordered))
	for i, c := range ordered {
		out[c.ID] = i
	}
	return out
}

// MoveWithinColumn removes the element at from and reinserts it so that it
// ends up at index to of the result. Both indexes refer to the original
// sequence, which is also the length of the result.
func MoveWithinColumn(ordered []models.Card, from, to int) ([]models.Card, error) {
	n := len(ordered)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("%w: from index %d, column length %d", ErrIndexOutOfRange, from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("%w: to index %d, column length %d", ErrIndexOutOfRange, to, n)
	}

	out := make([]models.Card, 0, n)
	out = append(out, ordered[:from]...)
	out = append(out, ordered[from+1:]...)
	return slices.Insert(out, to, ordered[from]), nil
}

// MoveAcrossColumns removes card from source and inserts it into target (the
// sequence of lane targetLane) at insertIndex. insertIndex is an index into the
// pre-move target sequence: cards from that index on shift down by one, and
// insertIndex == len(target) appends. The moved card carries targetLane in the
// result; positions are left for Renumber.
func MoveAcrossColumns(card models.Card, source, target []models.Card, targetLane types.LaneID, insertIndex int) ([]models.Card, []models.Card, error) {
	from := IndexOf(source, card.ID)
	if from < 0 {
		return nil, nil, fmt.Errorf("%w: card %s not in source column", ErrIndexOutOfRange, card.ID)
	}
	if insertIndex < 0 || insertIndex > len(target) {
		return nil, nil, fmt.Errorf("%w: insert index %d, column length %d", ErrIndexOutOfRange, insertIndex, len(target))
	}

	src := make([]models.Card, 0, len(source)-1)
	src = append(src, source[:from]...)
	src = append(src, source[from+1:]...)

	moved := source[from]
	moved.Lane = targetLane

	tgt := make([]models.Card, 0, len(target)+1)
	tgt = append(tgt, target...)
	tgt = slices.Insert(tgt, insertIndex, moved)

	return src, tgt, nil
}

// IndexOf returns the index of id in ordered, or -1
func IndexOf(ordered []models.Card, id types.CardID) int {
	return slices.IndexFunc(ordered, func(c models.Card) bool { return c.ID == id })
}

// Apply writes a lane's new sequence back into a full card set: every card in
// ordered gets lane and its index as position. Cards not in ordered keep their
// placement. The input slice is not modified.
func Apply(cards []models.Card, lane types.LaneID, ordered []models.Card) []models.Card {
	positions := Renumber(ordered)
	out := models.CloneCards(cards)
	for i := range out {
		if pos, ok := positions[out[i].ID]; ok {
			out[i].Lane = lane
			out[i].Position = pos
		}
	}
	return out
}
