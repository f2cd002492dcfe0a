// Package cmd wires the lanes command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/board"
	"github.com/thenoetrevino/lanes/internal/cli/card"
	"github.com/thenoetrevino/lanes/internal/cli/daemon"
	"github.com/thenoetrevino/lanes/internal/cli/tutorial"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/logging"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/types"
)

// NewRootCmd builds the lanes command tree. Without a subcommand it opens the
// board in the terminal.
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	root := &cobra.Command{
		Use:   "lanes",
		Short: "Lanes - a drag-and-drop kanban board for the terminal",
		Long: `Lanes is a kanban board for the terminal. Cards are dragged between
lanes with the mouse or the keyboard, and every move is saved as it is dropped.

Run without a subcommand to open the board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logCloser = initLogging()
			if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
				cmd.SetContext(cli.WithOwner(cmd.Context(), types.OwnerID(owner)))
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		RunE: runBoard,
	}

	root.PersistentFlags().String("owner", "", "Act on this owner's board instead of the configured one")
	root.Flags().Bool("read-only", false, "Show the board without allowing drags")

	root.AddCommand(card.CardCmd())
	root.AddCommand(board.ExportCmd())
	root.AddCommand(board.RepairCmd())
	root.AddCommand(daemon.DaemonCmd())
	root.AddCommand(tutorial.TutorialCmd())
	return root
}

// initLogging sends logs to ~/.lanes/logs, or nowhere when that fails
func initLogging() io.Closer {
	dir, err := logging.DefaultDir()
	if err == nil {
		closer, initErr := logging.Init(dir)
		if initErr == nil {
			return closer
		}
		err = initErr
	}
	logging.Discard()
	fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	return nil
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
		cfg.Owner = owner
	}

	var opts []app.Option
	if cmd.Flags().Changed("read-only") {
		readOnly, _ := cmd.Flags().GetBool("read-only")
		opts = append(opts, app.WithReadOnly(readOnly))
	}

	a, err := app.Open(cmd.Context(), cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			slog.Warn("failed to close app", "error", closeErr)
		}
	}()

	return tui.Run(cmd.Context(), a)
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return cli.ExitSuccess
	}
	if !cli.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}
