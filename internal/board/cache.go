// Package board owns the client-side card cache of one owner and routes drag
// events through the session, preview and commit engines.
package board

import (
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Cache is the single authoritative local copy of an owner's cards.
// It is not safe for concurrent use; it belongs to the UI goroutine.
type Cache struct {
	lanes   models.LaneSet
	cards   []models.Card
	version uint64
}

// NewCache creates an empty cache rendering the given lanes
func NewCache(lanes models.LaneSet) *Cache {
	return &Cache{lanes: lanes}
}

// Cards returns a copy of every cached card
func (c *Cache) Cards() []models.Card {
	return models.CloneCards(c.cards)
}

// Replace swaps the whole card set
func (c *Cache) Replace(cards []models.Card) {
	c.cards = models.CloneCards(cards)
	c.version++
}

// Version increments on every Replace
func (c *Cache) Version() uint64 {
	return c.version
}

// Len returns the number of cached cards
func (c *Cache) Len() int {
	return len(c.cards)
}

// Card looks up one card
func (c *Cache) Card(id types.CardID) (models.Card, bool) {
	for _, card := range c.cards {
		if card.ID == id {
			return card, true
		}
	}
	return models.Card{}, false
}

// Lanes returns the rendered lanes in display order
func (c *Cache) Lanes() models.LaneSet {
	return c.lanes
}

// Column returns one lane in render order
func (c *Cache) Column(lane types.LaneID) []models.Card {
	return ordering.SortColumn(c.cards, lane)
}

// Columns groups the cache by lane. Every lane is present, empty lanes map to
// an empty slice.
func (c *Cache) Columns() map[types.LaneID][]models.Card {
	return ordering.Group(c.cards, c.lanes)
}
