package card

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards lane by lane",
		Long: `List the board's cards lane by lane, in board order.

Examples:
  lanes card list
  lanes card list --lane=review
  lanes card list --json
`,
		RunE: runList,
	}

	cmd.Flags().String("lane", "", "Only list this lane")
	cli.AddOutputFlags(cmd)
	return cmd
}

type laneListing struct {
	Lane  string        `json:"lane"`
	Cards []models.Card `json:"cards"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	laneName, _ := cmd.Flags().GetString("lane")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	lanes := cliInstance.App.Config().LaneSet()
	only, err := cli.ResolveLane(lanes, laneName)
	if err != nil {
		return formatter.Fail(cli.ExitNotFound, "LANE_NOT_FOUND", err,
			"Available lanes: "+cli.FormatAvailableLanes(lanes))
	}

	grouped, err := cliInstance.App.CardService.ListCards(ctx, cliInstance.Owner())
	if err != nil {
		return formatter.Fail(cli.ExitError, "LIST_ERROR", err)
	}

	var listing []laneListing
	for _, lane := range lanes {
		if only != "" && lane != only {
			continue
		}
		cards := grouped[lane]
		if cards == nil {
			cards = []models.Card{}
		}
		listing = append(listing, laneListing{Lane: string(lane), Cards: cards})
	}

	if formatter.Quiet {
		for _, l := range listing {
			for _, c := range l.Cards {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			}
		}
		return nil
	}
	if formatter.JSON {
		return formatter.Success(listing)
	}

	for _, l := range listing {
		formatter.Printf("%s (%d)\n", models.Title(types.LaneID(l.Lane)), len(l.Cards))
		for _, c := range l.Cards {
			formatter.Printf("  %d. %s  [%s]\n", c.Position, c.Title, c.ID)
		}
	}
	return nil
}
