package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/testutil"
	testutilcli "github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestListCmd(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)
	review := testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneReview, "a", "b")
	testutil.SeedLane(t, app.Repo(), testutilcli.Owner, models.LaneDone, "z")
	testutil.SeedLane(t, app.Repo(), "bob", models.LaneReview, "not mine")

	t.Run("human lists every lane in order", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Inbox (0)")
		assert.Contains(t, output, "Review (2)")
		assert.Less(t, strings.Index(output, "Review (2)"), strings.Index(output, "Done (1)"))
		assert.Less(t, strings.Index(output, "0. a"), strings.Index(output, "1. b"))
		assert.NotContains(t, output, "not mine")
	})

	t.Run("quiet prints ids in board order", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--lane", "review", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, string(review[0])+"\n"+string(review[1])+"\n", output)
	})

	t.Run("json for one lane", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--lane", "done", "--json"})
		require.NoError(t, err)
		result := testutilcli.ParseJSON(t, output)
		listing := result["data"].([]any)
		require.Len(t, listing, 1)
		lane := listing[0].(map[string]any)
		assert.Equal(t, "done", lane["lane"])
		assert.Len(t, lane["cards"], 1)
	})

	t.Run("json lists empty lanes as empty arrays", func(t *testing.T) {
		output, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--lane", "inbox", "--json"})
		require.NoError(t, err)
		listing := testutilcli.ParseJSON(t, output)["data"].([]any)
		assert.Equal(t, []any{}, listing[0].(map[string]any)["cards"])
	})

	t.Run("unknown lane", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--lane", "nope"})
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}
