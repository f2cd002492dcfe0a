package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

func card(id string, lane types.LaneID, pos int) models.Card {
	return models.Card{ID: types.CardID(id), Lane: lane, Position: pos, Title: "title " + id}
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c.ID)
	}
	return out
}

func TestSortColumn(t *testing.T) {
	cards := []models.Card{
		card("c", models.LaneBacklog, 2),
		card("a", models.LaneBacklog, 0),
		card("x", models.LaneDone, 0),
		card("b", models.LaneBacklog, 1),
	}

	got := SortColumn(cards, models.LaneBacklog)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	assert.Empty(t, SortColumn(cards, models.LaneDesign))
}

func TestSortColumn_TieBrokenByID(t *testing.T) {
	// Two rows sharing a position must render in the same order every time
	cards := []models.Card{
		card("zeta", models.LaneInbox, 1),
		card("alpha", models.LaneInbox, 1),
		card("first", models.LaneInbox, 0),
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"first", "alpha", "zeta"}, ids(SortColumn(cards, models.LaneInbox)))
	}
}

func TestSortColumn_DoesNotMutateInput(t *testing.T) {
	cards := []models.Card{card("b", models.LaneInbox, 1), card("a", models.LaneInbox, 0)}
	_ = SortColumn(cards, models.LaneInbox)
	assert.Equal(t, []string{"b", "a"}, ids(cards))
}

func TestGroup(t *testing.T) {
	lanes := models.LaneSet{models.LaneInbox, models.LaneDone}
	cards := []models.Card{
		card("a", models.LaneInbox, 1),
		card("b", models.LaneInbox, 0),
		card("stray", "archived", 0),
	}

	groups := Group(cards, lanes)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"b", "a"}, ids(groups[models.LaneInbox]))
	assert.NotNil(t, groups[models.LaneDone])
	assert.Empty(t, groups[models.LaneDone])
}

func TestRenumber(t *testing.T) {
	ordered := []models.Card{
		card("a", models.LaneInbox, 4),
		card("b", models.LaneInbox, 9),
		card("c", models.LaneInbox, 9),
	}

	assert.Equal(t, map[types.CardID]int{"a": 0, "b": 1, "c": 2}, Renumber(ordered))
	assert.Empty(t, Renumber(nil))
}

func TestMoveWithinColumn(t *testing.T) {
	col := []models.Card{
		card("a", models.LaneBacklog, 0),
		card("b", models.LaneBacklog, 1),
		card("c", models.LaneBacklog, 2),
		card("d", models.LaneBacklog, 3),
	}

	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{"no move", 1, 1, []string{"a", "b", "c", "d"}},
		{"first to last", 0, 3, []string{"b", "c", "d", "a"}},
		{"last to first", 3, 0, []string{"d", "a", "b", "c"}},
		// Moving down one slot: the element lands at the over index of the
		// original array, not one before it
		{"down by one", 1, 2, []string{"a", "c", "b", "d"}},
		{"up by one", 2, 1, []string{"a", "c", "b", "d"}},
		{"down by two", 0, 2, []string{"b", "c", "a", "d"}},
		{"up by two", 3, 1, []string{"a", "d", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoveWithinColumn(col, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
			assert.Equal(t, tt.to, IndexOf(got, col[tt.from].ID), "moved card ends at the target index")
		})
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(col), "input must not be modified")
}

func TestMoveWithinColumn_OutOfRange(t *testing.T) {
	col := []models.Card{card("a", models.LaneBacklog, 0), card("b", models.LaneBacklog, 1)}

	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, 2}, {0, -1}} {
		_, err := MoveWithinColumn(col, idx[0], idx[1])
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "from=%d to=%d", idx[0], idx[1])
	}

	_, err := MoveWithinColumn(nil, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveAcrossColumns(t *testing.T) {
	design := []models.Card{card("p", models.LaneDesign, 0), card("q", models.LaneDesign, 1)}
	dev := []models.Card{card("r", models.LaneDevelopment, 0)}

	src, tgt, err := MoveAcrossColumns(design[0], design, dev, models.LaneDevelopment, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"q"}, ids(src))
	assert.Equal(t, []string{"p", "r"}, ids(tgt))
	assert.Equal(t, models.LaneDevelopment, tgt[0].Lane)
	assert.Equal(t, models.LaneDesign, design[0].Lane, "input must not be modified")
	assert.Len(t, dev, 1)
}

func TestMoveAcrossColumns_AppendToEmpty(t *testing.T) {
	inbox := []models.Card{card("a", models.LaneInbox, 0)}

	src, tgt, err := MoveAcrossColumns(inbox[0], inbox, nil, models.LaneDone, 0)
	require.NoError(t, err)
	assert.Empty(t, src)
	require.Len(t, tgt, 1)
	assert.Equal(t, models.LaneDone, tgt[0].Lane)
}

func TestMoveAcrossColumns_Errors(t *testing.T) {
	inbox := []models.Card{card("a", models.LaneInbox, 0)}
	done := []models.Card{card("z", models.LaneDone, 0)}

	_, _, err := MoveAcrossColumns(card("missing", models.LaneInbox, 0), inbox, done, models.LaneDone, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, _, err = MoveAcrossColumns(inbox[0], inbox, done, models.LaneDone, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, _, err = MoveAcrossColumns(inbox[0], inbox, done, models.LaneDone, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestApply(t *testing.T) {
	cards := []models.Card{
		card("a", models.LaneInbox, 0),
		card("b", models.LaneInbox, 1),
		card("c", models.LaneDone, 0),
	}
	reordered := []models.Card{cards[1], cards[0]}

	out := Apply(cards, models.LaneInbox, reordered)
	placements := models.Placements(out)
	assert.Equal(t, 0, placements["b"].Position)
	assert.Equal(t, 1, placements["a"].Position)
	assert.Equal(t, models.Placement{Lane: models.LaneDone, Position: 0}, placements["c"])
	assert.Equal(t, 0, cards[0].Position, "input must not be modified")
}
