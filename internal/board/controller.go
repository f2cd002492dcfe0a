package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/thenoetrevino/lanes/internal/commit"
	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Store is the external card store the controller reads and commits to
type Store interface {
	commit.Store
	FetchAll(ctx context.Context, owner types.OwnerID) ([]models.Card, error)
}

// Invalidator marks an owner's cached board stale for every client
type Invalidator interface {
	Invalidate(ctx context.Context, owner types.OwnerID) error
}

// Options configures a Controller
type Options struct {
	Owner              types.OwnerID
	Lanes              models.LaneSet
	ActivationDistance float64
	ReadOnly           bool
}

// Controller owns the local cache of one board and the drag session acting
// on it. Its methods belong to a single goroutine, the UI event loop; only
// Batch.Dispatch and Fetch.Run may run elsewhere.
type Controller struct {
	owner    types.OwnerID
	readOnly bool

	cache   *Cache
	session *drag.Session
	preview *drag.PreviewEngine
	engine  *commit.Engine
	sensor  *Sensor

	store       Store
	invalidator Invalidator

	generation uint64 // bumped for every dispatched batch
	lastBatch  uint64
	inFlight   int
	parked     *FetchResult
}

// NewController creates a controller with an empty cache. invalidator may be nil.
func NewController(store Store, invalidator Invalidator, opts Options) *Controller {
	lanes := opts.Lanes
	if len(lanes) == 0 {
		lanes = models.DefaultLanes()
	}
	distance := opts.ActivationDistance
	if opts.ReadOnly {
		distance = math.Inf(1)
	}
	return &Controller{
		owner:       opts.Owner,
		readOnly:    opts.ReadOnly,
		cache:       NewCache(lanes),
		session:     drag.NewSession(),
		preview:     drag.NewPreviewEngine(),
		engine:      commit.NewEngine(store),
		sensor:      NewSensor(distance),
		store:       store,
		invalidator: invalidator,
	}
}

// Owner returns the board owner
func (c *Controller) Owner() types.OwnerID { return c.owner }

// ReadOnly reports whether drags are disabled
func (c *Controller) ReadOnly() bool { return c.readOnly }

// Lanes returns the lanes in display order
func (c *Controller) Lanes() models.LaneSet { return c.cache.Lanes() }

// Columns returns every lane's cards in render order
func (c *Controller) Columns() map[types.LaneID][]models.Card { return c.cache.Columns() }

// Column returns one lane's cards in render order
func (c *Controller) Column(lane types.LaneID) []models.Card { return c.cache.Column(lane) }

// Cards returns a copy of the cached cards
func (c *Controller) Cards() []models.Card { return c.cache.Cards() }

// Card looks up a cached card
func (c *Controller) Card(id types.CardID) (models.Card, bool) { return c.cache.Card(id) }

// State returns the drag session state
func (c *Controller) State() drag.State { return c.session.State() }

// Dragging returns the dragged card and current over-target while a drag is active
func (c *Controller) Dragging() (types.CardID, drag.Target, bool) {
	if c.session.State() != drag.Active {
		return "", drag.None, false
	}
	return c.session.CardID(), c.session.Over(), true
}

// InFlight returns the number of dispatched batches not yet settled
func (c *Controller) InFlight() int { return c.inFlight }

// HasParkedRefresh reports whether a refresh is waiting for the drag to end
func (c *Controller) HasParkedRefresh() bool { return c.parked != nil }

// DragStart opens a drag session for cardID against the current cache
func (c *Controller) DragStart(cardID types.CardID) error {
	if c.readOnly {
		return ErrReadOnly
	}
	if err := c.session.Start(cardID, c.cache.Cards()); err != nil {
		return err
	}
	slog.Debug("drag started", "owner_id", c.owner, "card_id", cardID)
	return nil
}

// droppable maps lane targets outside the board to None
func (c *Controller) droppable(target drag.Target) drag.Target {
	if target.Kind == drag.TargetLane && !c.cache.Lanes().Contains(target.LaneID()) {
		return drag.None
	}
	return target
}

// DragOver shows the preview for target. It reports whether the cache changed.
// Lanes the board does not render revert the preview to the snapshot.
func (c *Controller) DragOver(target drag.Target) (bool, error) {
	cards, ok, err := c.preview.Over(c.session, c.droppable(target))
	if err != nil || !ok {
		return false, err
	}
	c.cache.Replace(cards)
	return true, nil
}

// DragEnd finishes the drag on target. Drops on nothing or on the dragged card
// cancel. Otherwise the drop is applied to the cache immediately and the
// returned batch, if any, must be dispatched and handed back to Settle.
// reported is the lane order shown by a rendering layer that animates
// same-lane reorders itself; it may be empty.
func (c *Controller) DragEnd(target drag.Target, reported ...types.CardID) (*commit.Batch, error) {
	if c.session.State() != drag.Active {
		return nil, drag.ErrNotActive
	}
	target = c.droppable(target)
	if target.IsNone() || c.session.IsSelf(target) {
		return nil, c.DragCancel()
	}

	cardID := c.session.CardID()
	snapshot, err := c.session.BeginCommit(target)
	if err != nil {
		return nil, err
	}

	plan, err := commit.PlanDrop(snapshot, commit.Drop{CardID: cardID, Target: target, ReportedOrder: reported})
	if err != nil {
		if snapshot != nil {
			c.cache.Replace(snapshot.Cards())
		}
		c.session.Abort()
		c.applyParked()
		slog.Warn("drop aborted", "owner_id", c.owner, "card_id", cardID, "target", target.String(), "error", err)
		return nil, err
	}

	batch := c.engine.Apply(c.cache, plan)
	c.session.Finish()

	if batch == nil {
		c.applyParked()
		return nil, nil
	}

	// A refresh parked during the drag predates this write
	c.parked = nil
	c.generation++
	c.lastBatch = batch.ID
	c.inFlight++
	slog.Info("drop committed", "owner_id", c.owner, "card_id", cardID, "target", target.String(), "updates", len(plan.Updates), "batch", batch.ID)
	return batch, nil
}

// DragCancel ends the drag and restores the cache to its snapshot
func (c *Controller) DragCancel() error {
	snapshot, err := c.session.Cancel()
	if err != nil {
		return err
	}
	c.sensor.Reset()
	c.cache.Replace(snapshot.Cards())
	c.applyParked()
	return nil
}

// Settle folds a dispatched batch back in. A failed write restores the
// batch's origin snapshot unless a later drop has already replaced it; either
// way the caller should reconcile afterwards. A failed write also ends any
// drag in progress, since its snapshot holds the rejected placement.
func (c *Controller) Settle(s commit.Settlement) error {
	if c.inFlight > 0 {
		c.inFlight--
	}
	if s.Err != nil && c.session.State() != drag.Idle {
		slog.Warn("write failed mid-drag, ending drag", "owner_id", c.owner, "card_id", c.session.CardID(), "batch", s.Batch.ID)
		if snapshot := c.session.Snapshot(); snapshot != nil {
			c.cache.Replace(snapshot.Cards())
		}
		c.session.Abort()
		c.sensor.Reset()
		// The reconcile that follows supersedes it
		c.parked = nil
	}
	if s.Err != nil && s.Batch.ID != c.lastBatch {
		slog.Warn("stale batch failed, leaving newer drop in place", "owner_id", c.owner, "batch", s.Batch.ID, "error", s.Err)
		return fmt.Errorf("%w: %w", commit.ErrWriteFailed, s.Err)
	}
	return c.engine.Settle(c.cache, s)
}

// FetchResult is the outcome of a Fetch
type FetchResult struct {
	Cards      []models.Card
	Err        error
	generation uint64
}

// Fetch is a store read prepared on the event loop and run off it
type Fetch struct {
	owner       types.OwnerID
	store       Store
	invalidator Invalidator
	invalidate  bool
	generation  uint64
}

// Refresh prepares a plain re-read of the board (mount, external invalidation)
func (c *Controller) Refresh() *Fetch {
	return &Fetch{owner: c.owner, store: c.store, generation: c.generation}
}

// Reconcile prepares the post-settle re-read: the board is fetched again,
// lanes left sparse by a failed batch are renumbered, and the owner is
// invalidated for every client
func (c *Controller) Reconcile() *Fetch {
	f := c.Refresh()
	f.invalidator = c.invalidator
	f.invalidate = true
	return f
}

// Run performs the fetch. It touches only the store and the invalidator.
func (f *Fetch) Run(ctx context.Context) FetchResult {
	cards, err := f.store.FetchAll(ctx, f.owner)
	if err != nil {
		err = fmt.Errorf("failed to fetch board for %s: %w", f.owner, err)
	} else if f.invalidate {
		cards = f.repair(ctx, cards)
	}
	if f.invalidate && f.invalidator != nil {
		if err := f.invalidator.Invalidate(ctx, f.owner); err != nil {
			// Other clients miss this update until their next refresh
			slog.Warn("failed to publish invalidation", "owner_id", f.owner, "error", err)
		}
	}
	return FetchResult{Cards: cards, Err: err, generation: f.generation}
}

// repair renumbers sparse lanes. A batch planned on top of a batch that later
// failed writes positions relative to a placement that never persisted.
func (f *Fetch) repair(ctx context.Context, cards []models.Card) []models.Card {
	if ordering.CheckDensity(cards) == nil {
		return cards
	}
	dense := ordering.Normalize(cards)
	updates := ordering.Diff(cards, dense)
	if err := f.store.UpdateMany(ctx, updates); err != nil {
		slog.Error("failed to renumber board", "owner_id", f.owner, "updates", len(updates), "error", err)
		return cards
	}
	slog.Info("renumbered sparse lanes", "owner_id", f.owner, "updates", len(updates))
	return dense
}

// ApplyFetch installs a fetch result. Results older than the latest dispatched
// batch, or arriving while a batch is in flight, are dropped; a newer read
// follows settlement. Results arriving mid-drag are parked until it ends.
func (c *Controller) ApplyFetch(r FetchResult) error {
	if r.Err != nil {
		return r.Err
	}
	if r.generation != c.generation || c.inFlight > 0 {
		slog.Debug("dropping stale fetch", "owner_id", c.owner, "generation", r.generation, "current", c.generation, "in_flight", c.inFlight)
		return nil
	}
	if c.session.State() != drag.Idle {
		c.parked = &r
		return nil
	}
	c.cache.Replace(r.Cards)
	return nil
}

func (c *Controller) applyParked() {
	if c.parked == nil {
		return
	}
	r := *c.parked
	c.parked = nil
	if err := c.ApplyFetch(r); err != nil {
		slog.Warn("failed to apply parked refresh", "owner_id", c.owner, "error", err)
	}
}

// Load fetches the board synchronously
func (c *Controller) Load(ctx context.Context) error {
	return c.ApplyFetch(c.Refresh().Run(ctx))
}

// Drop ends the active drag on target and runs the whole commit cycle
// synchronously: dispatch, settle and reconcile. Used where there is no event
// loop to hand the async steps to.
func (c *Controller) Drop(ctx context.Context, target drag.Target) error {
	batch, err := c.DragEnd(target)
	if err != nil || batch == nil {
		return err
	}
	settleErr := c.Settle(batch.Dispatch(ctx))
	fetchErr := c.ApplyFetch(c.Reconcile().Run(ctx))
	if settleErr != nil {
		if fetchErr != nil {
			slog.Warn("reconcile after failed write also failed", "owner_id", c.owner, "error", fetchErr)
		}
		return settleErr
	}
	return fetchErr
}

// Move drags cardID straight onto target and commits it
func (c *Controller) Move(ctx context.Context, cardID types.CardID, target drag.Target) error {
	if err := c.DragStart(cardID); err != nil {
		return err
	}
	if _, err := c.DragOver(target); err != nil {
		return errors.Join(err, c.DragCancel())
	}
	return c.Drop(ctx, target)
}

// PointerDown records a press on a card. Presses during a drag are ignored.
func (c *Controller) PointerDown(cardID types.CardID, x, y int) {
	if c.session.State() != drag.Idle {
		return
	}
	c.sensor.Press(cardID, x, y)
}

// PointerMove tracks the pointer. A press becomes a drag once it has moved past
// the activation distance; after that every move is a drag-over.
func (c *Controller) PointerMove(x, y int, over drag.Target) (bool, error) {
	if c.session.State() == drag.Active {
		return c.DragOver(over)
	}
	if !c.sensor.Move(x, y) {
		return false, nil
	}
	if err := c.DragStart(c.sensor.CardID()); err != nil {
		c.sensor.Reset()
		return false, err
	}
	return c.DragOver(over)
}

// PointerUp releases the pointer. A release that never became a drag is a
// click and returns a nil batch.
func (c *Controller) PointerUp(over drag.Target) (*commit.Batch, error) {
	if !c.sensor.Release() || c.session.State() != drag.Active {
		return nil, nil
	}
	return c.DragEnd(over)
}
