package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// SetupTestDB opens a migrated in-memory sqlite store, closed on cleanup
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo wraps SetupTestDB in a CardRepo
func SetupTestRepo(t *testing.T) *database.CardRepo {
	t.Helper()
	return database.NewCardRepo(SetupTestDB(t), database.DefaultWriteConcurrency)
}

// SeedLane inserts one card per title at the end of lane, in order, and
// returns their ids
func SeedLane(t *testing.T, repo database.DataStore, owner types.OwnerID, lane types.LaneID, titles ...string) []types.CardID {
	t.Helper()
	ctx := context.Background()

	existing, err := repo.FetchAll(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to fetch cards: %v", err)
	}
	next := 0
	for _, c := range existing {
		if c.Lane == lane && c.Position >= next {
			next = c.Position + 1
		}
	}

	ids := make([]types.CardID, 0, len(titles))
	for i, title := range titles {
		card := &models.Card{OwnerID: owner, Lane: lane, Position: next + i, Title: title}
		if err := repo.Insert(ctx, card); err != nil {
			t.Fatalf("Failed to insert card %q: %v", title, err)
		}
		ids = append(ids, card.ID)
	}
	return ids
}

// LaneTitles returns the titles of lane's cards in display order
func LaneTitles(t *testing.T, repo database.DataStore, owner types.OwnerID, lane types.LaneID) []string {
	t.Helper()
	cards, err := repo.FetchAll(context.Background(), owner)
	if err != nil {
		t.Fatalf("Failed to fetch cards: %v", err)
	}
	var titles []string
	for _, c := range cards {
		if c.Lane == lane {
			titles = append(titles, c.Title)
		}
	}
	return titles
}
