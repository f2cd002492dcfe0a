package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// DefaultWriteConcurrency bounds the parallel row writes of UpdateMany
const DefaultWriteConcurrency = 4

// CardRepo handles card persistence
type CardRepo struct {
	db          *sqlx.DB
	concurrency int
	now         func() time.Time
}

// NewCardRepo creates a repository. concurrency <= 0 means DefaultWriteConcurrency.
func NewCardRepo(db *sqlx.DB, concurrency int) *CardRepo {
	if concurrency <= 0 {
		concurrency = DefaultWriteConcurrency
	}
	return &CardRepo{
		db:          db,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying connection
func (r *CardRepo) DB() *sqlx.DB {
	return r.db
}

type cardRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Lane        string    `db:"lane"`
	Position    int       `db:"position"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	FeatureID   string    `db:"feature_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row cardRow) toModel() models.Card {
	return models.Card{
		ID:          types.CardID(row.ID),
		OwnerID:     types.OwnerID(row.OwnerID),
		Lane:        types.LaneID(row.Lane),
		Position:    row.Position,
		Title:       row.Title,
		Description: row.Description,
		FeatureID:   row.FeatureID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

const cardColumns = `id, owner_id, lane, position, title, description, feature_id, created_at, updated_at`

// FetchAll returns every card of owner
func (r *CardRepo) FetchAll(ctx context.Context, owner types.OwnerID) ([]models.Card, error) {
	var rows []cardRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT `+cardColumns+`
		FROM cards
		WHERE owner_id = ?
		ORDER BY lane, position, id`), string(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards for %s: %w", owner, err)
	}

	cards := make([]models.Card, len(rows))
	for i, row := range rows {
		cards[i] = row.toModel()
	}
	return cards, nil
}

// Get returns one card
func (r *CardRepo) Get(ctx context.Context, id types.CardID) (models.Card, error) {
	var row cardRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+cardColumns+` FROM cards WHERE id = ?`), string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, fmt.Errorf("%w: %s", models.ErrCardNotFound, id)
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return row.toModel(), nil
}

// Insert stores a new card. A missing id is generated; timestamps are set.
func (r *CardRepo) Insert(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = types.NewCardID()
	}
	now := r.now()
	card.CreatedAt = now
	card.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		string(card.ID), string(card.OwnerID), string(card.Lane), card.Position,
		card.Title, card.Description, card.FeatureID, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// UpdateDetails changes the payload fields of a card. Placement is untouched.
func (r *CardRepo) UpdateDetails(ctx context.Context, id types.CardID, title, description string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE cards
		SET title = ?, description = ?, updated_at = ?
		WHERE id = ?`),
		title, description, r.now(), string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", id, err)
	}
	return requireRow(res, id)
}

// UpdateMany writes placement updates. Each row is an independent write, not
// a transaction; rows run with bounded concurrency and every row is attempted
// even when others fail. Any failure is reported as a *BatchError.
func (r *CardRepo) UpdateMany(ctx context.Context, updates []models.CardUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	errs := make([]error, len(updates))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, u := range updates {
		g.Go(func() error {
			errs[i] = r.updateOne(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	batchErr := &BatchError{Total: len(updates)}
	for i, err := range errs {
		if err != nil {
			batchErr.Failed = append(batchErr.Failed, RowError{ID: updates[i].ID, Err: err})
		}
	}
	if len(batchErr.Failed) > 0 {
		return batchErr
	}
	return nil
}

func (r *CardRepo) updateOne(ctx context.Context, u models.CardUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		res sql.Result
		err error
	)
	if u.Lane != nil {
		res, err = r.db.ExecContext(ctx, r.db.Rebind(`
			UPDATE cards SET lane = ?, position = ?, updated_at = ? WHERE id = ?`),
			string(*u.Lane), u.Position, r.now(), string(u.ID),
		)
	} else {
		res, err = r.db.ExecContext(ctx, r.db.Rebind(`
			UPDATE cards SET position = ?, updated_at = ? WHERE id = ?`),
			u.Position, r.now(), string(u.ID),
		)
	}
	if err != nil {
		return err
	}
	return requireRow(res, u.ID)
}

// Delete removes a card. Other cards of its lane keep their positions.
func (r *CardRepo) Delete(ctx context.Context, id types.CardID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cards WHERE id = ?`), string(id))
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id types.CardID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrCardNotFound, id)
	}
	return nil
}
