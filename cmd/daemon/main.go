// Command lanes-daemon serves the invalidation socket, for running under a
// service manager instead of through "lanes daemon"
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/daemon"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := daemon.Run(ctx, cfg.Events.Socket); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
