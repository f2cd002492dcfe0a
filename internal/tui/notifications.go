package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// parseLevel maps the level names the event transports report
func parseLevel(s string) Level {
	switch s {
	case "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

const (
	defaultNotifyTTL = 4 * time.Second
	maxNotifications = 3
)

type notification struct {
	id      int
	level   Level
	message string
}

type expireMsg struct{ id int }

// notify shows a transient message and schedules its removal
func (m *Model) notify(level Level, message string) tea.Cmd {
	m.notifySeq++
	id := m.notifySeq
	m.notifications = append(m.notifications, notification{id: id, level: level, message: message})
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
	return tea.Tick(m.notifyTTL, func(time.Time) tea.Msg { return expireMsg{id: id} })
}

func (m *Model) expire(id int) {
	for i, n := range m.notifications {
		if n.id == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return
		}
	}
}

// renderNotification renders a compact inline notification
func (s styles) renderNotification(n notification) string {
	var icon string
	var style lipgloss.Style
	switch n.level {
	case LevelWarning:
		icon, style = "⚠", s.warning
	case LevelError:
		icon, style = "✕", s.error
	default:
		icon, style = "●", s.info
	}
	return style.Render(icon + " " + n.message)
}
