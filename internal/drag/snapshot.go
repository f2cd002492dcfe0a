// Package drag models one drag gesture: the snapshot taken when it starts, the
// session state machine that tracks it and the preview engine that turns
// pointer-over events into a candidate card set.
package drag

import (
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Snapshot is an immutable copy of the full card set.
// Every accessor returns fresh copies so callers cannot alias its storage.
type Snapshot struct {
	cards []models.Card
	index map[types.CardID]int
}

// NewSnapshot copies cards into a new snapshot
func NewSnapshot(cards []models.Card) *Snapshot {
	s := &Snapshot{
		cards: models.CloneCards(cards),
		index: make(map[types.CardID]int, len(cards)),
	}
	for i, c := range s.cards {
		s.index[c.ID] = i
	}
	return s
}

// Cards returns a copy of every card in the snapshot
func (s *Snapshot) Cards() []models.Card {
	return models.CloneCards(s.cards)
}

// Card looks up a card by id
func (s *Snapshot) Card(id types.CardID) (models.Card, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Card{}, false
	}
	return s.cards[i], true
}

// Column returns the ordered sequence of lane as of the snapshot
func (s *Snapshot) Column(lane types.LaneID) []models.Card {
	return ordering.SortColumn(s.cards, lane)
}

// Len returns the number of cards in the snapshot
func (s *Snapshot) Len() int {
	return len(s.cards)
}
