package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Board geometry in terminal cells. Every card is a fixed-height box so a
// pointer row maps straight to a card index.
const (
	laneWidth  = 30
	headerRows = 1
	cardRows   = 3 // top border, title, bottom border
)

type layout struct {
	boardTop     int
	boardHeight  int
	visibleLanes int
	cardsTop     int // first row of the first card
	cardSlots    int // cards that fit in a lane
}

func (m *Model) layout() layout {
	footer := lipgloss.Height(m.footerView())
	boardHeight := max(m.height-headerRows-footer, 3)
	return layout{
		boardTop:     headerRows,
		boardHeight:  boardHeight,
		visibleLanes: max(1, m.width/laneWidth),
		cardsTop:     headerRows + 2, // lane border + lane title
		cardSlots:    max(0, (boardHeight-3)/cardRows),
	}
}

// hit resolves a cell to the card under it, if any, and to the drop target
// it stands for. Cells in a lane but below its cards target the lane itself.
func (m *Model) hit(x, y int) (types.CardID, drag.Target) {
	l := m.layout()
	if x < 0 || y < l.boardTop || y >= l.boardTop+l.boardHeight {
		return "", drag.None
	}
	v := x / laneWidth
	lanes := m.ctrl.Lanes()
	if v >= l.visibleLanes || m.laneOffset+v >= len(lanes) {
		return "", drag.None
	}
	lane := lanes[m.laneOffset+v]

	if y >= l.cardsTop {
		row := (y - l.cardsTop) / cardRows
		if row < l.cardSlots {
			k := m.scroll[lane] + row
			col := m.ctrl.Column(lane)
			if k < len(col) {
				return col[k].ID, drag.OverCard(col[k].ID)
			}
		}
	}
	return "", drag.OverLane(lane)
}

// pointerTarget is the drop target under the pointer during a drag. While a
// preview is shown the dragged card sits in the previewed slot; hovering it
// keeps the current target instead of reverting the preview.
func (m *Model) pointerTarget(x, y int) drag.Target {
	_, target := m.hit(x, y)
	id, over, ok := m.ctrl.Dragging()
	if ok && target == drag.OverCard(id) && !over.IsNone() && over != drag.OverCard(id) {
		return over
	}
	return target
}

// cardCell returns a cell inside card k of the lane at index laneIdx. ok is
// false when that card is scrolled out of view.
func (m *Model) cardCell(laneIdx, k int) (x, y int, ok bool) {
	l := m.layout()
	v := laneIdx - m.laneOffset
	lane := m.ctrl.Lanes()[laneIdx]
	row := k - m.scroll[lane]
	if v < 0 || v >= l.visibleLanes || row < 0 || row >= l.cardSlots {
		return 0, 0, false
	}
	return v*laneWidth + laneWidth/2, l.cardsTop + row*cardRows + 1, true
}
