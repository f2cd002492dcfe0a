package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
)

func TestCheckDensity(t *testing.T) {
	tests := []struct {
		name    string
		cards   []models.Card
		wantErr bool
	}{
		{name: "empty board", cards: nil},
		{
			name: "dense lanes",
			cards: []models.Card{
				card("a", models.LaneInbox, 0),
				card("b", models.LaneInbox, 1),
				card("c", models.LaneDone, 0),
			},
		},
		{
			name:    "gap",
			cards:   []models.Card{card("a", models.LaneInbox, 0), card("b", models.LaneInbox, 2)},
			wantErr: true,
		},
		{
			name:    "duplicate position",
			cards:   []models.Card{card("a", models.LaneInbox, 0), card("b", models.LaneInbox, 0)},
			wantErr: true,
		},
		{
			name:    "does not start at zero",
			cards:   []models.Card{card("a", models.LaneInbox, 1)},
			wantErr: true,
		},
		{
			name:    "duplicate card",
			cards:   []models.Card{card("a", models.LaneInbox, 0), card("a", models.LaneDone, 0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDensity(tt.cards)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotDense)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	cards := []models.Card{
		card("a", models.LaneInbox, 3),
		card("b", models.LaneInbox, 3),
		card("c", models.LaneInbox, 10),
		card("d", models.LaneDone, 5),
	}

	out := Normalize(cards)
	require.NoError(t, CheckDensity(out))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortColumn(out, models.LaneInbox)))
	assert.Equal(t, 3, cards[0].Position, "input must not be modified")
}

func TestDiff(t *testing.T) {
	before := []models.Card{
		card("a", models.LaneInbox, 0),
		card("b", models.LaneInbox, 1),
		card("c", models.LaneDone, 0),
	}
	after := []models.Card{
		card("a", models.LaneDone, 0),
		card("b", models.LaneInbox, 0),
		card("c", models.LaneDone, 1),
	}

	updates := Diff(before, after)
	require.Len(t, updates, 3)

	assert.Equal(t, "a", string(updates[0].ID))
	require.NotNil(t, updates[0].Lane)
	assert.Equal(t, models.LaneDone, *updates[0].Lane)
	assert.Equal(t, 0, updates[0].Position)

	assert.Equal(t, "b", string(updates[1].ID))
	assert.Nil(t, updates[1].Lane, "lane is only sent when it changes")

	assert.Equal(t, "c", string(updates[2].ID))
	assert.Equal(t, 1, updates[2].Position)
}

func TestDiff_Unchanged(t *testing.T) {
	cards := []models.Card{card("a", models.LaneInbox, 0)}
	assert.Empty(t, Diff(cards, models.CloneCards(cards)))
}
