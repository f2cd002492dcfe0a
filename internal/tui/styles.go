package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lanes/internal/config"
)

type styles struct {
	lane     lipgloss.Style
	dropLane lipgloss.Style
	laneHead lipgloss.Style

	card     lipgloss.Style
	selected lipgloss.Style
	dragged  lipgloss.Style

	statusBar lipgloss.Style
	subtle    lipgloss.Style

	info    lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
}

func newStyles(t config.Theme) styles {
	color := func(c string) lipgloss.Color { return lipgloss.Color(c) }
	inline := func(fg, bg string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(color(fg)).Background(color(bg)).Padding(0, 1)
	}

	lane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color(t.LaneBorder))
	card := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(color(t.CardBorder)).
		Foreground(color(t.Normal))

	return styles{
		lane:     lane,
		dropLane: lane.BorderForeground(color(t.DropLaneBorder)),
		laneHead: lipgloss.NewStyle().Bold(true).Foreground(color(t.Title)),

		card:     card,
		selected: card.BorderForeground(color(t.SelectedBorder)),
		dragged:  card.Border(lipgloss.ThickBorder()).BorderForeground(color(t.DraggedBorder)),

		statusBar: lipgloss.NewStyle().Foreground(color(t.StatusBarText)).Background(color(t.StatusBarBg)),
		subtle:    lipgloss.NewStyle().Foreground(color(t.Subtle)),

		info:    inline(t.InfoFg, t.InfoBg),
		warning: inline(t.WarningFg, t.WarningBg),
		error:   inline(t.ErrorFg, t.ErrorBg),
	}
}
