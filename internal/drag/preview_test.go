package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

func board() []models.Card {
	return []models.Card{
		card("p", models.LaneDesign, 0),
		card("q", models.LaneDesign, 1),
		card("s", models.LaneDesign, 2),
		card("r", models.LaneDevelopment, 0),
	}
}

func laneIDs(cards []models.Card, lane types.LaneID) []string {
	var out []string
	for _, c := range ordering.SortColumn(cards, lane) {
		out = append(out, string(c.ID))
	}
	return out
}

func startedSession(t *testing.T, cardID types.CardID, cards []models.Card) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.Start(cardID, cards))
	return s
}

func TestPreview_AcrossLanesOntoCard(t *testing.T) {
	s := startedSession(t, "p", board())
	e := NewPreviewEngine()

	cards, ok, err := e.Over(s, OverCard("r"))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"q", "s"}, laneIDs(cards, models.LaneDesign))
	assert.Equal(t, []string{"p", "r"}, laneIDs(cards, models.LaneDevelopment))
	assert.NoError(t, ordering.CheckDensity(cards))
}

func TestPreview_OntoEmptyLaneAppends(t *testing.T) {
	s := startedSession(t, "q", board())
	e := NewPreviewEngine()

	cards, ok, err := e.Over(s, OverLane(models.LaneDone))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"q"}, laneIDs(cards, models.LaneDone))
	assert.Equal(t, []string{"p", "s"}, laneIDs(cards, models.LaneDesign))

	cards, _, err = e.Over(s, OverLane(models.LaneDevelopment))
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "q"}, laneIDs(cards, models.LaneDevelopment), "non-empty lane body appends at the end")
}

func TestPreview_WithinLane(t *testing.T) {
	s := startedSession(t, "p", board())
	e := NewPreviewEngine()

	cards, ok, err := e.Over(s, OverCard("s"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"q", "s", "p"}, laneIDs(cards, models.LaneDesign))
}

func TestPreview_SelfOverRestoresOriginal(t *testing.T) {
	original := board()
	s := startedSession(t, "p", original)
	e := NewPreviewEngine()

	_, _, err := e.Over(s, OverCard("r"))
	require.NoError(t, err)

	cards, ok, err := e.Over(s, OverCard("p"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Placements(original), models.Placements(cards))
}

func TestPreview_NoneAndUnknownEmitSnapshot(t *testing.T) {
	original := board()
	s := startedSession(t, "p", original)
	e := NewPreviewEngine()

	for _, target := range []Target{OverCard("r"), None, OverCard("ghost"), OverLane(models.LaneDesign)} {
		cards, ok, err := e.Over(s, target)
		require.NoError(t, err)
		require.True(t, ok)
		if target == OverCard("r") {
			continue
		}
		assert.Equal(t, models.Placements(original), models.Placements(cards), "target %s", target)
	}
}

func TestPreview_DerivedFromSnapshotNotPreviousPreview(t *testing.T) {
	s := startedSession(t, "p", board())
	e := NewPreviewEngine()

	// Bounce across many targets; the result for a target never depends on
	// what came before it
	var last []models.Card
	for i := 0; i < 5; i++ {
		for _, target := range []Target{OverCard("r"), OverLane(models.LaneDone), OverCard("s"), OverCard("q")} {
			cards, _, err := e.Over(s, target)
			require.NoError(t, err)
			require.NoError(t, ordering.CheckDensity(cards))
			if target == OverCard("q") {
				if last != nil {
					assert.Equal(t, models.Placements(last), models.Placements(cards))
				}
				last = cards
			}
		}
	}
	assert.Equal(t, []string{"q", "p", "s"}, laneIDs(last, models.LaneDesign))
}

func TestPreview_SkipsUnchangedSignature(t *testing.T) {
	s := startedSession(t, "p", board())
	e := NewPreviewEngine()

	_, ok, err := e.Over(s, OverCard("r"))
	require.NoError(t, err)
	assert.True(t, ok)

	for i := 0; i < 50; i++ {
		cards, ok, err := e.Over(s, OverCard("r"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, cards)
	}
	assert.Equal(t, 1, e.Computed())
}

func TestPreview_RequiresActiveSession(t *testing.T) {
	e := NewPreviewEngine()
	_, _, err := e.Over(NewSession(), OverCard("r"))
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestResolve_NoSnapshot(t *testing.T) {
	_, err := Resolve(nil, "p", OverCard("r"))
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestResolve_DraggedCardMissing(t *testing.T) {
	_, err := Resolve(NewSnapshot(board()), "ghost", OverCard("r"))
	assert.ErrorIs(t, err, ordering.ErrIndexOutOfRange)
}

func TestResolve_Kinds(t *testing.T) {
	snapshot := NewSnapshot(board())

	tests := []struct {
		name   string
		target Target
		kind   MoveKind
	}{
		{"self", OverCard("p"), NoMove},
		{"none", None, NoMove},
		{"own lane body", OverLane(models.LaneDesign), NoMove},
		{"unknown card", OverCard("ghost"), NoMove},
		{"same lane card", OverCard("q"), WithinLane},
		{"other lane card", OverCard("r"), AcrossLanes},
		{"other lane body", OverLane(models.LaneDone), AcrossLanes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, err := Resolve(snapshot, "p", tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, move.Kind)
		})
	}
}
