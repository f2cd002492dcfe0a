package card

import "errors"

// Validation errors
var (
	ErrEmptyTitle     = errors.New("card title cannot be empty")
	ErrTitleTooLong   = errors.New("card title cannot exceed 255 characters")
	ErrInvalidCardID  = errors.New("invalid card ID")
	ErrInvalidOwnerID = errors.New("invalid owner ID")
	ErrNoChanges      = errors.New("no fields to update")
)

// Business logic errors
var (
	// ErrWrongOwner indicates the card exists but belongs to another board
	ErrWrongOwner = errors.New("card belongs to another owner")

	// ErrTargetInOtherLane indicates a move named a lane and an anchor card
	// that sits in a different lane
	ErrTargetInOtherLane = errors.New("anchor card is not in the target lane")
)
