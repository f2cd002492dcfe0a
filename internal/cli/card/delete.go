package card

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/types"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a card and close the gap in its lane",
		RunE:    runDelete,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

type deleteResult struct {
	CardID types.CardID `json:"card_id"`
}

func (d *deleteResult) GetID() string { return string(d.CardID) }

func runDelete(cmd *cobra.Command, args []string) error {
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

	if err := cliInstance.App.CardService.DeleteCard(ctx, cliInstance.Owner(), types.CardID(cardID)); err != nil {
		return failLookup(formatter, err)
	}

	result := &deleteResult{CardID: types.CardID(cardID)}
	if formatter.JSON || formatter.Quiet {
		return formatter.Success(result)
	}
	formatter.Printf("Deleted card %s\n", cardID)
	return nil
}
