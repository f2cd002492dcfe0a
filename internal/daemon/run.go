package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Run serves socketPath until ctx is cancelled. The socket directory is
// created owner-only.
func Run(ctx context.Context, socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	server, err := NewServer(socketPath)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	slog.Info("lanes daemon starting", "socket_path", socketPath, "pid", os.Getpid())
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}
	slog.Info("lanes daemon shutting down gracefully")
	return nil
}
