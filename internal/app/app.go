// Package app wires the store, the event transport and the services into a
// single container shared by the CLI and the TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

// App holds all application services and provides dependency injection
type App struct {
	cfg  *config.Config
	db   *sqlx.DB
	repo *database.CardRepo

	// Event system for live updates; nil when running standalone
	eventClient events.EventPublisher
	invalidator *events.Invalidator

	readOnly bool
	distance float64

	CardService cardservice.Service
}

// New creates an App over an open store
func New(db *sqlx.DB, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	concurrency := cfg.Board.WriteConcurrency
	if o.writeConcurrency > 0 {
		concurrency = o.writeConcurrency
	}
	repo := database.NewCardRepo(db, concurrency)
	invalidator := events.NewInvalidator(o.publisher)

	a := &App{
		cfg:         cfg,
		db:          db,
		repo:        repo,
		eventClient: o.publisher,
		invalidator: invalidator,
		readOnly:    cfg.Board.ReadOnly,
		distance:    cfg.Board.ActivationDistance,
		CardService: cardservice.NewService(repo, invalidator, cfg.LaneSet()),
	}
	if o.readOnly != nil {
		a.readOnly = *o.readOnly
	}
	if o.distance != nil {
		a.distance = *o.distance
	}
	return a
}

// Open connects to the configured store and event transport and builds the
// App. A missing daemon is not an error: the App runs without live updates.
// opts are applied after the connected publisher.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	opts = append([]Option{WithEventPublisher(ConnectPublisher(ctx, cfg))}, opts...)
	return New(db, cfg, opts...), nil
}

// ConnectPublisher returns the configured event transport, or nil when it is
// disabled or unreachable
func ConnectPublisher(ctx context.Context, cfg *config.Config) events.EventPublisher {
	if cfg.Events.Disabled {
		return nil
	}
	if cfg.Events.RedisURL != "" {
		p, err := events.NewRedisPublisher(cfg.Events.RedisURL)
		if err != nil {
			slog.Warn("invalid redis url, live updates disabled", "error", err)
			return nil
		}
		if err := p.Connect(ctx); err != nil {
			slog.Warn("redis unreachable, live updates disabled", "error", err)
			_ = p.Close()
			return nil
		}
		if err := p.Subscribe(cfg.OwnerID()); err != nil {
			slog.Warn("redis subscribe failed", "error", err)
		}
		return p
	}

	client, err := events.NewClient(cfg.Events.Socket)
	if err != nil {
		return nil
	}
	if err := client.Connect(ctx); err != nil {
		slog.Debug("daemon not reachable, live updates disabled", "error", events.ClassifyDaemonError(err))
		_ = client.Close()
		return nil
	}
	if err := client.Subscribe(cfg.OwnerID()); err != nil {
		slog.Warn("daemon subscribe failed", "error", err)
	}
	return client
}

// Config returns the configuration the App was built with
func (a *App) Config() *config.Config { return a.cfg }

// Repo returns the card repository
func (a *App) Repo() *database.CardRepo { return a.repo }

// Events returns the event transport, nil when running standalone
func (a *App) Events() events.EventPublisher { return a.eventClient }

// NewController creates a board controller for the configured owner
func (a *App) NewController() *board.Controller {
	return board.NewController(a.repo, a.invalidator, board.Options{
		Owner:              a.cfg.OwnerID(),
		Lanes:              a.cfg.LaneSet(),
		ActivationDistance: a.distance,
		ReadOnly:           a.readOnly,
	})
}

// Close releases the event transport and the store
func (a *App) Close() error {
	var errs []error
	if a.eventClient != nil {
		errs = append(errs, a.eventClient.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
