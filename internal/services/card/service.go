// Package card is the CRUD surface over an owner's cards. Every write keeps
// lane positions dense and publishes a board invalidation.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

const maxTitleLength = 255

// Service defines the card operations used by the CLI
type Service interface {
	// Read operations
	ListCards(ctx context.Context, owner types.OwnerID) (map[types.LaneID][]models.Card, error)
	GetCard(ctx context.Context, owner types.OwnerID, id types.CardID) (models.Card, error)

	// Write operations
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, req UpdateCardRequest) error
	DeleteCard(ctx context.Context, owner types.OwnerID, id types.CardID) error

	// MoveCard runs a drop through the board controller, as if the card had
	// been dragged onto the target
	MoveCard(ctx context.Context, req MoveCardRequest) error

	// Repair renumbers every lane of owner and writes only the changed rows
	Repair(ctx context.Context, owner types.OwnerID) ([]models.CardUpdate, error)
}

// CreateCardRequest describes a new card. It is appended at the end of Lane.
type CreateCardRequest struct {
	Owner       types.OwnerID
	Lane        types.LaneID
	Title       string
	Description string
	FeatureID   string
}

// UpdateCardRequest changes a card's payload. Nil fields are left alone.
type UpdateCardRequest struct {
	Owner       types.OwnerID
	CardID      types.CardID
	Title       *string
	Description *string
}

// MoveCardRequest places a card in Lane. With Before set the card takes
// Before's slot, otherwise it goes to the end of the lane.
type MoveCardRequest struct {
	Owner  types.OwnerID
	CardID types.CardID
	Lane   types.LaneID
	Before types.CardID
}

type service struct {
	repo        database.DataStore
	invalidator board.Invalidator
	lanes       models.LaneSet
}

// NewService creates a card service. invalidator may be nil.
func NewService(repo database.DataStore, invalidator board.Invalidator, lanes models.LaneSet) Service {
	if len(lanes) == 0 {
		lanes = models.DefaultLanes()
	}
	return &service{repo: repo, invalidator: invalidator, lanes: lanes}
}

func (s *service) ListCards(ctx context.Context, owner types.OwnerID) (map[types.LaneID][]models.Card, error) {
	if owner == "" {
		return nil, ErrInvalidOwnerID
	}
	cards, err := s.repo.FetchAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return ordering.Group(cards, s.lanes), nil
}

func (s *service) GetCard(ctx context.Context, owner types.OwnerID, id types.CardID) (models.Card, error) {
	if id == "" {
		return models.Card{}, ErrInvalidCardID
	}
	card, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Card{}, err
	}
	if owner != "" && card.OwnerID != owner {
		return models.Card{}, ErrWrongOwner
	}
	return card, nil
}

func (s *service) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	if err := s.validateCreate(&req); err != nil {
		return nil, err
	}

	cards, err := s.repo.FetchAll(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read lane: %w", err)
	}

	card := &models.Card{
		OwnerID:     req.Owner,
		Lane:        req.Lane,
		Position:    len(ordering.SortColumn(cards, req.Lane)),
		Title:       req.Title,
		Description: req.Description,
		FeatureID:   req.FeatureID,
	}
	if err := s.repo.Insert(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.publish(ctx, req.Owner)
	return card, nil
}

func (s *service) validateCreate(req *CreateCardRequest) error {
	if req.Owner == "" {
		return ErrInvalidOwnerID
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if req.Lane == "" {
		req.Lane = s.lanes[0]
	}
	if !s.lanes.Contains(req.Lane) {
		return fmt.Errorf("%w: %s", models.ErrUnknownLane, req.Lane)
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (s *service) UpdateCard(ctx context.Context, req UpdateCardRequest) error {
	if req.Title == nil && req.Description == nil {
		return ErrNoChanges
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validateTitle(trimmed); err != nil {
			return err
		}
		req.Title = &trimmed
	}

	card, err := s.GetCard(ctx, req.Owner, req.CardID)
	if err != nil {
		return err
	}

	title, description := card.Title, card.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := s.repo.UpdateDetails(ctx, card.ID, title, description); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	s.publish(ctx, card.OwnerID)
	return nil
}

// DeleteCard removes the card and closes the gap it leaves in its lane
func (s *service) DeleteCard(ctx context.Context, owner types.OwnerID, id types.CardID) error {
	card, err := s.GetCard(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	if _, err := s.compact(ctx, card.OwnerID); err != nil {
		s.publish(ctx, card.OwnerID)
		return fmt.Errorf("card deleted but lane could not be renumbered: %w", err)
	}

	s.publish(ctx, card.OwnerID)
	return nil
}

func (s *service) MoveCard(ctx context.Context, req MoveCardRequest) error {
	card, err := s.GetCard(ctx, req.Owner, req.CardID)
	if err != nil {
		return err
	}
	if req.Lane != "" && !s.lanes.Contains(req.Lane) {
		return fmt.Errorf("%w: %s", models.ErrUnknownLane, req.Lane)
	}

	target := drag.OverLane(req.Lane)
	if req.Before != "" {
		anchor, err := s.GetCard(ctx, card.OwnerID, req.Before)
		if err != nil {
			return fmt.Errorf("anchor card: %w", err)
		}
		if req.Lane != "" && anchor.Lane != req.Lane {
			return ErrTargetInOtherLane
		}
		target = drag.OverCard(anchor.ID)
	} else if req.Lane == "" {
		return fmt.Errorf("%w: no lane given", models.ErrUnknownLane)
	}

	ctrl := board.NewController(s.repo, s.invalidator, board.Options{
		Owner: card.OwnerID,
		Lanes: s.lanes,
	})
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	if err := ctrl.Move(ctx, card.ID, target); err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}
	return nil
}

func (s *service) Repair(ctx context.Context, owner types.OwnerID) ([]models.CardUpdate, error) {
	if owner == "" {
		return nil, ErrInvalidOwnerID
	}
	updates, err := s.compact(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		slog.Info("repaired lane positions", "owner_id", owner, "updates", len(updates))
		s.publish(ctx, owner)
	}
	return updates, nil
}

// compact renumbers every lane of owner and writes the rows that changed
func (s *service) compact(ctx context.Context, owner types.OwnerID) ([]models.CardUpdate, error) {
	cards, err := s.repo.FetchAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	updates := ordering.Diff(cards, ordering.Normalize(cards))
	if len(updates) == 0 {
		return nil, nil
	}
	if err := s.repo.UpdateMany(ctx, updates); err != nil {
		return nil, fmt.Errorf("failed to renumber lanes: %w", err)
	}
	return updates, nil
}

// publish tells other clients to refetch owner's board. Failures are logged;
// the write itself already succeeded.
func (s *service) publish(ctx context.Context, owner types.OwnerID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, owner); err != nil {
		slog.Warn("failed to publish invalidation", "owner_id", owner, "error", err)
	}
}
