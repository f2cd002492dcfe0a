package card

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/testutil"
	testutilcli "github.com/thenoetrevino/lanes/internal/testutil/cli"
	"github.com/thenoetrevino/lanes/internal/types"
)

func TestAddCmd(t *testing.T) {
	_, app := testutilcli.SetupCLITest(t)

	tests := []struct {
		name      string
		args      []string
		wantCode  int
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "quiet prints the new id",
			args: []string{"--title", "Spike pricing", "--quiet"},
			checkFunc: func(t *testing.T, output string) {
				id := types.CardID(strings.TrimSpace(output))
				card, err := app.CardService.GetCard(context.Background(), testutilcli.Owner, id)
				require.NoError(t, err)
				assert.Equal(t, models.LaneInbox, card.Lane)
			},
		},
		{
			name: "json with lane and description",
			args: []string{"--title", "Onboarding", "--lane", "Design", "--description", "Three screens", "--json"},
			checkFunc: func(t *testing.T, output string) {
				result := testutilcli.ParseJSON(t, output)
				assert.Equal(t, true, result["success"])
				data := result["data"].(map[string]any)
				assert.Equal(t, "Onboarding", data["title"])
				assert.Equal(t, "design", data["lane"])
				assert.Equal(t, "Three screens", data["description"])
				assert.Equal(t, float64(0), data["position"])
			},
		},
		{
			name: "human output",
			args: []string{"--title", "Second design card", "--lane", "design"},
			checkFunc: func(t *testing.T, output string) {
				assert.Contains(t, output, "in 'design' at position 1")
			},
		},
		{
			name:     "unknown lane",
			args:     []string{"--title", "x", "--lane", "someday", "--json"},
			wantCode: cli.ExitNotFound,
			checkFunc: func(t *testing.T, output string) {
				result := testutilcli.ParseJSON(t, output)
				assert.Equal(t, false, result["success"])
				errData := result["error"].(map[string]any)
				assert.Equal(t, "LANE_NOT_FOUND", errData["code"])
				assert.Contains(t, errData["suggestion"], "inbox")
			},
		},
		{
			name:     "blank title",
			args:     []string{"--title", "   "},
			wantCode: cli.ExitValidation,
		},
		{
			name:     "missing title",
			args:     []string{"--lane", "inbox"},
			wantCode: cli.ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testutilcli.ExecuteCLICommand(t, app, AddCmd(), tt.args)
			if tt.wantCode == cli.ExitSuccess {
				require.NoError(t, err, "output: %s", output)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, cli.ExitCode(err))
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, output)
			}
		})
	}

	assert.Equal(t, []string{"Onboarding", "Second design card"},
		testutil.LaneTitles(t, app.Repo(), testutilcli.Owner, models.LaneDesign))
}
