package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading board..."
	}
	l := m.layout()
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.boardView(l), m.footerView())
}

// headerView renders a one-line status bar: board owner on the left, drag
// and save state on the right
func (m *Model) headerView() string {
	left := fmt.Sprintf(" lanes · %s", m.ctrl.Owner())
	right := m.statusText() + " "

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right
	return m.styles.statusBar.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m *Model) statusText() string {
	var parts []string
	if id, over, ok := m.ctrl.Dragging(); ok {
		title := string(id)
		if c, found := m.ctrl.Card(id); found {
			title = c.Title
		}
		parts = append(parts, fmt.Sprintf("dragging %q over %s", title, m.describeTarget(over)))
	}
	if n := m.ctrl.InFlight(); n > 0 {
		parts = append(parts, "saving...")
	}
	if m.ctrl.ReadOnly() {
		parts = append(parts, "read-only")
	}
	if !m.loaded {
		parts = append(parts, "loading...")
	}
	return strings.Join(parts, " | ")
}

func (m *Model) describeTarget(t drag.Target) string {
	switch t.Kind {
	case drag.TargetCard:
		if c, ok := m.ctrl.Card(t.CardID()); ok {
			return fmt.Sprintf("%q", c.Title)
		}
	case drag.TargetLane:
		return models.Title(t.LaneID())
	}
	return "nothing"
}

func (m *Model) boardView(l layout) string {
	lanes := m.ctrl.Lanes()
	end := min(m.laneOffset+l.visibleLanes, len(lanes))

	dropLane := m.dropLane()
	views := make([]string, 0, end-m.laneOffset)
	for i := m.laneOffset; i < end; i++ {
		views = append(views, m.laneView(i, lanes[i], l, lanes[i] == dropLane))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// dropLane is the lane the dragged card currently previews into
func (m *Model) dropLane() types.LaneID {
	id, over, ok := m.ctrl.Dragging()
	if !ok || over.IsNone() {
		return ""
	}
	if c, found := m.ctrl.Card(id); found {
		return c.Lane
	}
	return ""
}

func (m *Model) laneView(idx int, lane types.LaneID, l layout, isDrop bool) string {
	cards := m.ctrl.Column(lane)
	first := min(m.scroll[lane], len(cards))
	last := min(first+l.cardSlots, len(cards))

	head := fmt.Sprintf("%s (%d)", models.Title(lane), len(cards))
	if first > 0 {
		head += " ↑"
	}
	if last < len(cards) {
		head += " ↓"
	}

	inner := laneWidth - 2
	rows := []string{m.styles.laneHead.MaxWidth(inner).Render(head)}

	draggedID, _, dragging := m.ctrl.Dragging()
	for k := first; k < last; k++ {
		c := cards[k]
		style := m.styles.card
		switch {
		case dragging && c.ID == draggedID:
			style = m.styles.dragged
		case !dragging && m.kb == nil && idx == m.focusLane && k == m.focusCard:
			style = m.styles.selected
		}
		title := lipgloss.NewStyle().MaxWidth(inner - 2).Render(oneLine(c.Title))
		rows = append(rows, style.Width(inner-2).Render(title))
	}
	if len(cards) == 0 {
		rows = append(rows, m.styles.subtle.Render("  empty"))
	}

	style := m.styles.lane
	if isDrop {
		style = m.styles.dropLane
	}
	return style.
		Width(inner).
		Height(l.boardHeight - 2).
		MaxHeight(l.boardHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) footerView() string {
	var lines []string
	if len(m.notifications) > 0 {
		rendered := make([]string, len(m.notifications))
		for i, n := range m.notifications {
			rendered[i] = m.styles.renderNotification(n)
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(rendered, " ")))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
