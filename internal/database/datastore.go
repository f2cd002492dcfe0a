package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// DataStore is the card store surface used by the services and the board.
// CardRepo implements it; tests substitute fakes.
type DataStore interface {
	FetchAll(ctx context.Context, owner types.OwnerID) ([]models.Card, error)
	Get(ctx context.Context, id types.CardID) (models.Card, error)
	Insert(ctx context.Context, card *models.Card) error
	UpdateDetails(ctx context.Context, id types.CardID, title, description string) error
	UpdateMany(ctx context.Context, updates []models.CardUpdate) error
	Delete(ctx context.Context, id types.CardID) error
}

var _ DataStore = (*CardRepo)(nil)
