package card

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
	"github.com/thenoetrevino/lanes/internal/types"
)

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change a card's title or description",
		Long: `Change a card's title or description. Lane and position only change
through 'lanes card move' or the board.

Examples:
  lanes card update --id=<id> --title="Better title"
  lanes card update --id=<id> --description=""
`,
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	cardID, _ := cmd.Flags().GetString("id")

	req := cardservice.UpdateCardRequest{CardID: types.CardID(cardID)}
	// Only flags that were given change; an explicit empty description clears it
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if req.Title == nil && req.Description == nil {
		return formatter.Fail(cli.ExitUsage, "NO_UPDATES", cardservice.ErrNoChanges,
			"Pass --title and/or --description")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()
	req.Owner = cliInstance.Owner()

	if err := cliInstance.App.CardService.UpdateCard(ctx, req); err != nil {
		if errors.Is(err, cardservice.ErrEmptyTitle) || errors.Is(err, cardservice.ErrTitleTooLong) {
			return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err)
		}
		return failLookup(formatter, err)
	}

	card, err := cliInstance.App.CardService.GetCard(ctx, req.Owner, req.CardID)
	if err != nil {
		return failLookup(formatter, err)
	}
	if formatter.JSON || formatter.Quiet {
		return formatter.Success(&card)
	}
	formatter.Printf("Updated card %s\n", card.ID)
	return nil
}
