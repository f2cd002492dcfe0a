package commit

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/lanes/internal/models"
)

// Store persists card placement updates. UpdateMany may apply the rows
// independently; a partial failure still returns an error.
type Store interface {
	UpdateMany(ctx context.Context, updates []models.CardUpdate) error
}

// Cache is the local card state the engine writes optimistically
type Cache interface {
	Cards() []models.Card
	Replace(cards []models.Card)
}

// Engine applies drop plans to the local cache and hands their writes off as batches
type Engine struct {
	store Store
	seq   atomic.Uint64
}

// NewEngine creates a commit engine writing to store
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Apply installs the plan's candidate in cache. A no-op plan restores the
// origin snapshot instead and returns a nil batch, since nothing needs writing.
func (e *Engine) Apply(cache Cache, plan *Plan) *Batch {
	if plan.IsNoop() {
		cache.Replace(models.CloneCards(plan.Before))
		return nil
	}

	cache.Replace(models.CloneCards(plan.Candidate))
	b := &Batch{
		ID:       e.seq.Add(1),
		store:    e.store,
		updates:  plan.Updates,
		rollback: models.CloneCards(plan.Before),
	}
	slog.Debug("commit batch prepared", "batch", b.ID, "card_id", plan.Drop.CardID, "updates", len(b.updates))
	return b
}

// Settle folds a batch result back into cache. On failure the batch's origin
// snapshot is restored and the returned error wraps ErrWriteFailed.
func (e *Engine) Settle(cache Cache, s Settlement) error {
	if s.Err == nil {
		slog.Debug("commit batch settled", "batch", s.Batch.ID, "duration", s.Duration)
		return nil
	}
	cache.Replace(models.CloneCards(s.Batch.rollback))
	slog.Error("commit batch failed, rolled back", "batch", s.Batch.ID, "updates", len(s.Batch.updates), "error", s.Err)
	return fmt.Errorf("%w: %w", ErrWriteFailed, s.Err)
}

// Batch is one drop's worth of row updates, ready to be written
type Batch struct {
	ID uint64

	store    Store
	updates  []models.CardUpdate
	rollback []models.Card
}

// Updates returns a copy of the rows the batch writes
func (b *Batch) Updates() []models.CardUpdate {
	out := make([]models.CardUpdate, len(b.updates))
	copy(out, b.updates)
	return out
}

// Rollback returns a copy of the state restored when the batch fails
func (b *Batch) Rollback() []models.Card {
	return models.CloneCards(b.rollback)
}

// Dispatch writes the batch. It only touches the store, so it may run off the
// UI goroutine; the result goes back through Engine.Settle.
func (b *Batch) Dispatch(ctx context.Context) Settlement {
	start := time.Now()
	err := b.store.UpdateMany(ctx, b.updates)
	return Settlement{Batch: b, Err: err, Duration: time.Since(start)}
}

// Settlement is the outcome of a dispatched batch
type Settlement struct {
	Batch    *Batch
	Err      error
	Duration time.Duration
}
