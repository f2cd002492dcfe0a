package board

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/export"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as markdown",
		Long: `Write the board as markdown, one section per lane with cards in board order.

On a terminal the markdown is rendered; pass --raw to get the plain source.

Examples:
  lanes export
  lanes export --raw > board.md
`,
		RunE: runExport,
	}

	cmd.Flags().Bool("raw", false, "Print markdown source instead of rendering it")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	raw, _ := cmd.Flags().GetBool("raw")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	cards, err := cliInstance.App.Repo().FetchAll(ctx, cliInstance.Owner())
	if err != nil {
		return formatter.Fail(cli.ExitError, "FETCH_ERROR", err)
	}

	lanes := cliInstance.App.Config().LaneSet()
	if err := export.Write(cmd.OutOrStdout(), cliInstance.Owner(), lanes, cards, raw); err != nil {
		return formatter.Fail(cli.ExitError, "EXPORT_ERROR", err)
	}
	return nil
}

// RepairCmd returns the repair command
func RepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Renumber every lane so positions run 0..n-1",
		Long: `Renumber every lane of the board so positions are dense again.

Only cards whose position changes are written. Boards edited solely through
lanes never need this; it fixes gaps and duplicates left by other writers.
`,
		RunE: runRepair,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	updates, err := cliInstance.App.CardService.Repair(ctx, cliInstance.Owner())
	if err != nil {
		return formatter.Fail(cli.ExitDataErr, "REPAIR_ERROR", err)
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{
			"updated": len(updates),
			"updates": updates,
		})
	}
	if len(updates) == 0 {
		formatter.Printf("Board is already dense, nothing to do\n")
		return nil
	}
	formatter.Printf("Renumbered %d card(s)\n", len(updates))
	return nil
}
