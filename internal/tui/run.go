package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/events"
)

// Run shows the configured owner's board until the user quits or ctx ends
func Run(ctx context.Context, a *app.App) error {
	var ch <-chan events.Event
	publisher := a.Events()
	if publisher != nil {
		listened, err := publisher.Listen(ctx)
		if err != nil {
			slog.Warn("failed to listen for board invalidations", "error", err)
		} else {
			ch = listened
		}
	}

	model := New(ctx, a.NewController(), a.Config(), ch)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if publisher != nil {
		publisher.SetNotifyFunc(func(level, message string) {
			p.Send(notifyMsg{level: parseLevel(level), message: message})
		})
		defer publisher.SetNotifyFunc(nil)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}
