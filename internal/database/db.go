// Package database handles the connection to the card store (SQLite by
// default, Postgres when configured) and its card repository
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported drivers, as named in the config file
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultPath returns ~/.lanes/lanes.db, creating the directory
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	lanesDir := filepath.Join(home, ".lanes")
	if err := os.MkdirAll(lanesDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return filepath.Join(lanesDir, "lanes.db"), nil
}

// Open connects to the store and runs migrations. An empty dsn for sqlite
// means DefaultPath.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case DriverSQLite, "":
		db, err = openSQLite(ctx, dsn)
	case DriverPostgres:
		db, err = openPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func openSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	raw, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite benefits from a single writer connection, and :memory: databases
	// exist per connection
	raw.SetMaxOpenConns(1)
	raw.SetMaxIdleConns(1)

	// modernc registers as "sqlite"; sqlx needs the sqlite3 name for ? bindvars
	db := sqlx.NewDb(raw, "sqlite3")

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		// SQLite retries for this long before reporting the database as locked
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			closeDB(db)
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres needs a dsn", ErrUnknownDriver)
	}
	raw, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	raw.SetConnMaxIdleTime(5 * time.Minute)
	raw.SetConnMaxLifetime(30 * time.Minute)
	raw.SetMaxIdleConns(5)
	raw.SetMaxOpenConns(20)

	db := sqlx.NewDb(raw, "pgx")
	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}
	return db, nil
}

func closeDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
