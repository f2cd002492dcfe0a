package tutorial

import (
	_ "embed"
	"io"

	"github.com/spf13/cobra"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Print a markdown guide to the board and its commands",
		Long: `Print a compact markdown guide to lanes: moving cards on the board and
driving the same moves from scripts.

Useful as session context for agents that manage cards through the CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), tutorialContent)
			return err
		},
	}
	return cmd
}
