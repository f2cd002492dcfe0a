package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/daemon"
	"github.com/thenoetrevino/lanes/internal/events"
)

// DaemonCmd returns the daemon command. Without a subcommand it serves the
// invalidation socket in the foreground.
func DaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the live-update daemon",
		Long: `Run the daemon that relays board invalidations between lanes processes.

Open boards refresh as soon as another process changes the same owner's
cards. Without the daemon every process still works but only sees other
writers' changes on its next refresh.
`,
		Args: cobra.NoArgs,
		RunE: runDaemon,
	}

	cmd.Flags().String("socket", "", "Socket path (defaults to events.socket from the config)")
	cmd.AddCommand(StatusCmd())
	return cmd
}

func socketPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("socket"); path != "" {
		return path, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Events.Socket, nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	formatter := cli.Formatter(cmd)
	path, err := socketPath(cmd)
	if err != nil {
		return formatter.Fail(cli.ExitError, "CONFIG_ERROR", err)
	}
	if err := daemon.Run(cmd.Context(), path); err != nil {
		return formatter.Fail(cli.ExitError, "DAEMON_ERROR", err)
	}
	return nil
}

// StatusCmd returns the daemon status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the daemon is reachable",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	cmd.Flags().String("socket", "", "Socket path (defaults to events.socket from the config)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	formatter := cli.Formatter(cmd)
	path, err := socketPath(cmd)
	if err != nil {
		return formatter.Fail(cli.ExitError, "CONFIG_ERROR", err)
	}

	client, err := events.NewClient(path)
	if err != nil {
		return formatter.Fail(cli.ExitError, "CLIENT_ERROR", err)
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		return formatter.Fail(cli.ExitError, "DAEMON_UNREACHABLE",
			fmt.Errorf("%s at %s: %w", daemonErr.Message, path, err), daemonErr.Hint)
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{"running": true, "socket": path})
	}
	formatter.Printf("Daemon is running at %s\n", path)
	return nil
}
