package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/testutil"
	testutilcli "github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestMoveCmd_AcrossLanes(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	design := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDesign, "P", "Q")
	dev := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDevelopment, "R")

	output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(),
		[]string{"--id", string(design[0]), "--before", string(dev[0]), "--json"})
	require.NoError(t, err, "output: %s", output)

	data := testutilcli.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "design", data["from_lane"])
	assert.Equal(t, "development", data["to_lane"])
	assert.Equal(t, float64(0), data["position"])

	assert.Equal(t, []string{"Q"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneDesign))
	assert.Equal(t, []string{"P", "R"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneDevelopment))

	cards, err := app.Repo().FetchAll(t.Context(), testutilcli.Owner)
	require.NoError(t, err)
	assert.NoError(t, ordering.CheckDensity(cards))
}

func TestMoveCmd_AppendToLane(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	inbox := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneInbox, "A")
	testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDone, "old")

	output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", string(inbox[0]), "--lane", "done"})
	require.NoError(t, err)
	assert.Contains(t, output, "moved to 'done' position 1")
	assert.Equal(t, []string{"old", "A"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneDone))
}

func TestMoveCmd_WithinLane(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	backlog := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneBacklog, "X", "Y")

	output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(),
		[]string{"--id", string(backlog[1]), "--before", string(backlog[0]), "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, string(backlog[1])+"\n", output)
	assert.Equal(t, []string{"Y", "X"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneBacklog))
}

func TestMoveCmd_OwnLaneStays(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	backlog := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneBacklog, "X", "Y")

	output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", string(backlog[0]), "--lane", "backlog"})
	require.NoError(t, err)
	assert.Contains(t, output, "stays at 'backlog' position 0")
	assert.Equal(t, []string{"X", "Y"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneBacklog))
}

func TestMoveCmd_Errors(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	backlog := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneBacklog, "X")
	done := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDone, "Z")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown card", []string{"--id", "ghost", "--lane", "done", "--json"}, cli.ExitNotFound, "CARD_NOT_FOUND"},
		{"unknown lane", []string{"--id", string(backlog[0]), "--lane", "nope", "--json"}, cli.ExitNotFound, "LANE_NOT_FOUND"},
		{"before names a card in another lane", []string{"--id", string(backlog[0]), "--lane", "backlog", "--before", string(done[0]), "--json"}, cli.ExitValidation, "TARGET_MISMATCH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))
			errData := testutilcli.ParseJSON(t, output)["error"].(map[string]any)
			assert.Equal(t, tt.wantErr, errData["code"])
		})
	}

	t.Run("needs a lane or a card", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", string(backlog[0])})
		assert.Error(t, err)
	})

	assert.Equal(t, []string{"X"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneBacklog))
}
