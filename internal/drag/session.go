package drag

import (
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// State is a drag session lifecycle state
type State int

const (
	// Idle means no drag is in progress and no snapshot is held
	Idle State = iota
	// Active means a card is being dragged
	Active
	// Committing means the card was dropped on a target and the commit is being
	// planned and applied
	Committing
	// Cancelled means the drag was abandoned; the session passes through it on
	// its way back to Idle
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Committing:
		return "committing"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session tracks one drag gesture at a time.
// The zero value is an Idle session ready for use.
type Session struct {
	state    State
	cardID   types.CardID
	snapshot *Snapshot
	over     Target

	// signature of the last over event that produced a preview
	signature    Target
	hasSignature bool

	// outcome of the most recent drag, kept after returning to Idle
	last State
}

// NewSession creates an Idle session
func NewSession() *Session {
	return &Session{}
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return s.state
}

// LastOutcome returns Committing or Cancelled for the most recently finished
// drag, or Idle when no drag has finished yet
func (s *Session) LastOutcome() State {
	return s.last
}

// CardID returns the dragged card, empty when Idle
func (s *Session) CardID() types.CardID {
	return s.cardID
}

// Snapshot returns the origin snapshot, nil when Idle
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot
}

// Over returns the current over-target
func (s *Session) Over() Target {
	return s.over
}

// Start enters Active for cardID and snapshots cards.
// A drag cannot start while another one is Active or Committing.
func (s *Session) Start(cardID types.CardID, cards []models.Card) error {
	if s.state == Active || s.state == Committing {
		return fmt.Errorf("%w: session is %s", ErrSessionBusy, s.state)
	}

	snapshot := NewSnapshot(cards)
	if _, ok := snapshot.Card(cardID); !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}

	s.state = Active
	s.cardID = cardID
	s.snapshot = snapshot
	s.over = None
	s.signature = None
	s.hasSignature = false
	return nil
}

// Hover records a new over-target. It reports false when the target's
// signature equals the last one seen, in which case no preview needs to be
// recomputed.
func (s *Session) Hover(target Target) (bool, error) {
	if s.state != Active {
		return false, ErrNotActive
	}
	s.over = target
	if s.hasSignature && s.signature == target {
		return false, nil
	}
	s.signature = target
	s.hasSignature = true
	return true, nil
}

// IsSelf reports whether target is the dragged card itself
func (s *Session) IsSelf(target Target) bool {
	return target.Kind == TargetCard && target.CardID() == s.cardID
}

// BeginCommit moves an Active session to Committing for the drop target and
// returns the origin snapshot to diff against.
func (s *Session) BeginCommit(target Target) (*Snapshot, error) {
	if s.state != Active {
		return nil, ErrNotActive
	}
	s.state = Committing
	s.over = target
	return s.snapshot, nil
}

// Finish ends a Committing session and discards its snapshot
func (s *Session) Finish() {
	if s.state != Committing {
		return
	}
	s.reset(Committing)
}

// Cancel abandons an Active drag and returns the snapshot the caller must
// restore. The session passes through Cancelled and ends Idle.
func (s *Session) Cancel() (*Snapshot, error) {
	if s.state != Active {
		return nil, ErrNotActive
	}
	snapshot := s.snapshot
	s.state = Cancelled
	s.reset(Cancelled)
	return snapshot, nil
}

// Abort returns the session to Idle from any state. Used when a commit cannot
// be planned at all.
func (s *Session) Abort() {
	s.reset(Cancelled)
}

func (s *Session) reset(outcome State) {
	s.state = Idle
	s.cardID = ""
	s.snapshot = nil
	s.over = None
	s.signature = None
	s.hasSignature = false
	s.last = outcome
}
