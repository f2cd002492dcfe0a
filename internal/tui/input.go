package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/models"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.kb != nil {
		return m.handleDragKey(msg)
	}
	if m.ctrl.State() == drag.Active {
		// A mouse drag is in progress; only cancel and quit apply
		switch {
		case key.Matches(msg, m.keys.CancelDrag):
			m.cancelDrag()
		case key.Matches(msg, m.keys.Quit):
			m.cancelDrag()
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureVisible()
	case key.Matches(msg, m.keys.Refresh):
		return m.fetch(m.ctrl.Refresh())
	case key.Matches(msg, m.keys.PrevLane):
		m.moveFocusLane(-1)
	case key.Matches(msg, m.keys.NextLane):
		m.moveFocusLane(1)
	case key.Matches(msg, m.keys.PrevCard):
		m.moveFocusCard(-1)
	case key.Matches(msg, m.keys.NextCard):
		m.moveFocusCard(1)
	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollLanes(-1)
	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollLanes(1)
	case key.Matches(msg, m.keys.PickUp):
		return m.pickUp()
	}
	return nil
}

func (m *Model) handleDragKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.CancelDrag):
		m.cancelDrag()
		return nil
	case key.Matches(msg, m.keys.Quit):
		m.cancelDrag()
		return tea.Quit
	case key.Matches(msg, m.keys.PickUp):
		return m.drop(m.kb.target(m.ctrl.Lanes()))
	case key.Matches(msg, m.keys.PrevLane):
		m.kb.moveLane(-1, m.ctrl.Lanes())
	case key.Matches(msg, m.keys.NextLane):
		m.kb.moveLane(1, m.ctrl.Lanes())
	case key.Matches(msg, m.keys.PrevCard):
		m.kb.moveSlot(-1, m.ctrl.Lanes())
	case key.Matches(msg, m.keys.NextCard):
		m.kb.moveSlot(1, m.ctrl.Lanes())
	default:
		return nil
	}
	return m.hoverKeyboardTarget()
}

// pickUp starts a keyboard drag of the focused card
func (m *Model) pickUp() tea.Cmd {
	card, ok := m.focusedCard()
	if !ok {
		return nil
	}
	origin := m.ctrl.Columns()
	if err := m.ctrl.DragStart(card.ID); err != nil {
		if errors.Is(err, board.ErrReadOnly) {
			return m.notify(LevelWarning, "Board is read-only")
		}
		return m.notify(LevelError, err.Error())
	}
	m.kb = &keyboardDrag{
		card:     card.ID,
		origin:   origin,
		fromLane: m.focusLane,
		fromSlot: m.focusCard,
		lane:     m.focusLane,
		slot:     m.focusCard,
	}
	return nil
}

func (m *Model) hoverKeyboardTarget() tea.Cmd {
	if _, err := m.ctrl.DragOver(m.kb.target(m.ctrl.Lanes())); err != nil {
		m.cancelDrag()
		return m.notify(LevelError, "Drag cancelled: "+err.Error())
	}
	m.focusLane, m.focusCard = m.kb.lane, m.kb.slot
	m.ensureVisible()
	return nil
}

// drop ends the active drag on target and dispatches the resulting writes
func (m *Model) drop(target drag.Target) tea.Cmd {
	id, _, _ := m.ctrl.Dragging()
	m.kb = nil
	batch, err := m.ctrl.DragEnd(target)
	if id != "" {
		m.focusOn(id)
	}
	m.clampFocus()
	if err != nil {
		return m.notify(LevelError, "Move aborted: "+err.Error())
	}
	if batch == nil {
		return nil
	}
	return m.dispatch(batch)
}

func (m *Model) cancelDrag() {
	id, _, active := m.ctrl.Dragging()
	m.kb = nil
	if active {
		_ = m.ctrl.DragCancel()
		m.focusOn(id)
	}
	m.clampFocus()
}

// maxSlot is the last slot a keyboard drag may target in lane i. Other lanes
// have one extra slot past their last card: the end of the lane.
func (d *keyboardDrag) maxSlot(i int, lanes models.LaneSet) int {
	n := len(d.origin[lanes[i]])
	if i == d.fromLane {
		return n - 1
	}
	return n
}

func (d *keyboardDrag) moveLane(delta int, lanes models.LaneSet) {
	d.lane = clamp(d.lane+delta, 0, len(lanes)-1)
	if d.lane == d.fromLane {
		d.slot = d.fromSlot
		return
	}
	d.slot = clamp(d.slot, 0, d.maxSlot(d.lane, lanes))
}

func (d *keyboardDrag) moveSlot(delta int, lanes models.LaneSet) {
	d.slot = clamp(d.slot+delta, 0, d.maxSlot(d.lane, lanes))
}

// target is the card whose slot the dragged card would take, or the lane
// itself past its last card
func (d *keyboardDrag) target(lanes models.LaneSet) drag.Target {
	lane := lanes[d.lane]
	col := d.origin[lane]
	if d.slot < len(col) {
		return drag.OverCard(col[d.slot].ID)
	}
	return drag.OverLane(lane)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.kb != nil {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollLane(msg.X, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollLane(msg.X, 1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if id, _ := m.hit(msg.X, msg.Y); id != "" {
			m.focusOn(id)
			m.ctrl.PointerDown(id, msg.X, msg.Y)
		}

	case msg.Action == tea.MouseActionMotion:
		if _, err := m.ctrl.PointerMove(msg.X, msg.Y, m.pointerTarget(msg.X, msg.Y)); err != nil {
			m.cancelDrag()
			if errors.Is(err, board.ErrReadOnly) {
				return m.notify(LevelWarning, "Board is read-only")
			}
			return m.notify(LevelError, "Drag cancelled: "+err.Error())
		}

	case msg.Action == tea.MouseActionRelease:
		target := m.pointerTarget(msg.X, msg.Y)
		id, _, _ := m.ctrl.Dragging()
		batch, err := m.ctrl.PointerUp(target)
		if id != "" {
			m.focusOn(id)
		}
		m.clampFocus()
		if err != nil {
			return m.notify(LevelError, "Move aborted: "+err.Error())
		}
		if batch != nil {
			return m.dispatch(batch)
		}
	}
	return nil
}
