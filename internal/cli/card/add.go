package card

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

// AddCmd returns the card add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to the end of a lane",
		Long: `Add a card to the end of a lane.

Examples:
  # Add to the first lane
  lanes card add --title="Spike pricing page"

  # Add to a specific lane with a description
  lanes card add --title="Onboarding flow" --lane=design --description="Three screens"

  # Quiet mode for bash capture
  CARD_ID=$(lanes card add --title="Fix login" --quiet)
`,
		RunE: runAdd,
	}

	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("lane", "", "Lane name (defaults to the first lane)")
	cmd.Flags().String("description", "", "Card description")
	cmd.Flags().String("feature", "", "Roadmap feature reference")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	laneName, _ := cmd.Flags().GetString("lane")
	description, _ := cmd.Flags().GetString("description")
	feature, _ := cmd.Flags().GetString("feature")

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
	lane, err := cli.ResolveLane(lanes, laneName)
	if err != nil {
		return formatter.Fail(cli.ExitNotFound, "LANE_NOT_FOUND", err,
			"Available lanes: "+cli.FormatAvailableLanes(lanes))
	}

	card, err := cliInstance.App.CardService.CreateCard(ctx, cardservice.CreateCardRequest{
		Owner:       cliInstance.Owner(),
		Lane:        lane,
		Title:       title,
		Description: description,
		FeatureID:   feature,
	})
	if err != nil {
		if errors.Is(err, cardservice.ErrEmptyTitle) || errors.Is(err, cardservice.ErrTitleTooLong) {
			return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err)
		}
		return formatter.Fail(cli.ExitError, "CREATE_ERROR", err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(card)
	}
	formatter.Printf("Created card %s in '%s' at position %d\n", card.ID, card.Lane, card.Position)
	return nil
}
