package card

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/commit"
	"github.com/thenoetrevino/lanes/internal/models"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
	"github.com/thenoetrevino/lanes/internal/types"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a card within or across lanes",
		Long: `Move a card the same way a drag on the board does.

--before drops the card onto another card: it takes that card's slot and the
cards after it shift down. --lane alone drops it onto the lane, appending it
at the end. Dropping a card onto its own lane is a no-op.

Examples:
  # Append to the end of "review"
  lanes card move --id=<id> --lane=review

  # Take the slot of another card
  lanes card move --id=<id> --before=<other-id>

  # JSON output for agents
  lanes card move --id=<id> --lane=done --json
`,
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("lane", "", "Target lane")
	cmd.Flags().String("before", "", "Card whose slot the moved card takes")
	cmd.MarkFlagsOneRequired("lane", "before")

	cli.AddOutputFlags(cmd)
	return cmd
}

type moveResult struct {
	CardID   types.CardID `json:"card_id"`
	FromLane types.LaneID `json:"from_lane"`
	ToLane   types.LaneID `json:"to_lane"`
	Position int          `json:"position"`
}

func (m *moveResult) GetID() string { return string(m.CardID) }

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cardID, _ := cmd.Flags().GetString("id")
	laneName, _ := cmd.Flags().GetString("lane")
	before, _ := cmd.Flags().GetString("before")

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

	owner := cliInstance.Owner()
	svc := cliInstance.App.CardService
	origin, err := svc.GetCard(ctx, owner, types.CardID(cardID))
	if err != nil {
		return failLookup(formatter, err)
	}

	err = svc.MoveCard(ctx, cardservice.MoveCardRequest{
		Owner:  owner,
		CardID: origin.ID,
		Lane:   lane,
		Before: types.CardID(before),
	})
	if err != nil {
		switch {
		case errors.Is(err, cardservice.ErrTargetInOtherLane):
			return formatter.Fail(cli.ExitValidation, "TARGET_MISMATCH", err,
				"Drop --lane or name a card in that lane")
		case errors.Is(err, commit.ErrWriteFailed):
			return formatter.Fail(cli.ExitError, "WRITE_FAILED", err,
				"The board was left unchanged; try again")
		case cli.IsNotFound(err):
			return formatter.Fail(cli.ExitNotFound, "NOT_FOUND", err)
		default:
			return formatter.Fail(cli.ExitError, "MOVE_ERROR", err)
		}
	}

	moved, err := svc.GetCard(ctx, owner, origin.ID)
	if err != nil {
		return failLookup(formatter, err)
	}
	result := &moveResult{CardID: moved.ID, FromLane: origin.Lane, ToLane: moved.Lane, Position: moved.Position}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(result)
	}
	if origin.Lane == moved.Lane && origin.Position == moved.Position {
		formatter.Printf("Card %s stays at %s\n", moved.ID, describe(moved))
		return nil
	}
	formatter.Printf("Card %s moved to %s\n", moved.ID, describe(moved))
	return nil
}

func describe(c models.Card) string {
	return fmt.Sprintf("'%s' position %d", c.Lane, c.Position)
}
