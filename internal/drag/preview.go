package drag

import (
	"errors"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
)

// PreviewEngine turns pointer-over events of an Active session into candidate
// card sets. Candidates are always derived from the origin snapshot, never
// from the previous preview, so index errors cannot compound over a long drag.
type PreviewEngine struct {
	computed int // previews actually computed, for debugging dedupe
}

// NewPreviewEngine creates a preview engine
func NewPreviewEngine() *PreviewEngine {
	return &PreviewEngine{}
}

// Over handles one pointer-over event. It returns ok=false when the target's
// signature is unchanged since the last event and nothing was recomputed;
// otherwise cards is the full candidate set to show.
//
// Self-targets, missing targets and targets that cannot be resolved emit the
// snapshot unchanged, which reverts any earlier preview.
func (e *PreviewEngine) Over(s *Session, target Target) (cards []models.Card, ok bool, err error) {
	changed, err := s.Hover(target)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return nil, false, nil
	}
	e.computed++

	snapshot := s.Snapshot()
	move, err := Resolve(snapshot, s.CardID(), target)
	if err != nil {
		if errors.Is(err, ordering.ErrIndexOutOfRange) {
			slog.Debug("preview fell back to snapshot", "card_id", s.CardID(), "target", target.String(), "error", err)
			return snapshot.Cards(), true, nil
		}
		return nil, false, err
	}
	return move.Candidate(snapshot.Cards()), true, nil
}

// Computed returns how many previews were actually recomputed
func (e *PreviewEngine) Computed() int {
	return e.computed
}
