package drag

import "errors"

// Session errors
var (
	// ErrSessionBusy indicates a drag start while another drag is active or committing
	ErrSessionBusy = errors.New("a drag is already in progress")

	// ErrNotActive indicates an over/end event with no active drag
	ErrNotActive = errors.New("no active drag")

	// ErrNoSnapshot indicates a move resolved without an origin snapshot
	ErrNoSnapshot = errors.New("no drag snapshot")

	// ErrCardNotFound indicates a drag start for a card missing from the cache
	ErrCardNotFound = errors.New("dragged card not found")

	// ErrInvalidTarget marks a self-drop or a drop outside every droppable
	// surface. It is a silent revert, never shown to the user.
	ErrInvalidTarget = errors.New("invalid drop target")
)
