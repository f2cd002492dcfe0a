package card

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/models"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one card",
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	cardID, _ := cmd.Flags().GetString("id")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	card, err := cliInstance.App.CardService.GetCard(ctx, cliInstance.Owner(), types.CardID(cardID))
	if err != nil {
		return failLookup(formatter, err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(&card)
	}

	formatter.Printf("%s\n", card.Title)
	formatter.Printf("  ID:       %s\n", card.ID)
	formatter.Printf("  Lane:     %s (position %d)\n", models.Title(card.Lane), card.Position)
	if card.FeatureID != "" {
		formatter.Printf("  Feature:  %s\n", card.FeatureID)
	}
	formatter.Printf("  Updated:  %s\n", card.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if card.Description != "" {
		formatter.Printf("\n%s\n", card.Description)
	}
	return nil
}

// failLookup reports a failed card lookup with the matching exit code
func failLookup(formatter *cli.OutputFormatter, err error) error {
	switch {
	case errors.Is(err, models.ErrCardNotFound), errors.Is(err, cardservice.ErrWrongOwner):
		return formatter.Fail(cli.ExitNotFound, "CARD_NOT_FOUND", err,
			"Run 'lanes card list' to see card ids")
	case errors.Is(err, cardservice.ErrInvalidCardID):
		return formatter.Fail(cli.ExitUsage, "INVALID_ID", err)
	default:
		return formatter.Fail(cli.ExitError, "FETCH_ERROR", err)
	}
}
