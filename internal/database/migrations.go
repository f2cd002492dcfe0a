package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// runMigrations creates the card schema if needed
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	timestamp := "DATETIME"
	if db.DriverName() == "pgx" {
		timestamp = "TIMESTAMPTZ"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			lane TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			feature_id TEXT NOT NULL DEFAULT '',
			created_at ` + timestamp + ` NOT NULL,
			updated_at ` + timestamp + ` NOT NULL
		)`,
		// Positions are not unique: independent row writes can briefly collide
		`CREATE INDEX IF NOT EXISTS idx_cards_owner_lane
		 ON cards(owner_id, lane, position)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
