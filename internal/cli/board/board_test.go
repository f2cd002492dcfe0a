package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/testutil"
	testutilcli "github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestExportCmd(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDesign, "Wireframes", "Copy")

	output, err := testutilcli.ExecuteCLICommand(t, app, ExportCmd(), []string{"--raw"})
	require.NoError(t, err)

	assert.Contains(t, output, "# Board: alice")
	assert.Contains(t, output, "## Design (2)")
	assert.Contains(t, output, "1. **Wireframes**\n2. **Copy**")
	assert.Contains(t, output, "## Inbox (0)\n\n_No cards_")
}

func TestExportCmd_NotATerminalStaysRaw(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDone, "Shipped")

	output, err := testutilcli.ExecuteCLICommand(t, app, ExportCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "## Done (1)")
}

func TestRepairCmd(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	ctx := context.Background()
	for i, pos := range []int{2, 5, 9} {
		require.NoError(t, app.Repo().Insert(ctx, &models.Card{
			OwnerID: testutilcli.Owner, Lane: models.LaneTesting, Position: pos, Title: string(rune('a' + i)),
		}))
	}

	output, err := testutilcli.ExecuteCLICommand(t, app, RepairCmd(), []string{"--json"})
	require.NoError(t, err)
	data := testutilcli.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, float64(3), data["updated"])

	cards, err := app.Repo().FetchAll(ctx, testutilcli.Owner)
	require.NoError(t, err)
	assert.NoError(t, ordering.CheckDensity(cards))
	assert.Equal(t, []string{"a", "b", "c"}, testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneTesting))

	output, err = testutilcli.ExecuteCLICommand(t, app, RepairCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "already dense")
}
