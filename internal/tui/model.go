// Package tui is the terminal board. It renders the controller's cache and
// turns mouse and keyboard input into drag calls; store reads and writes run
// as bubbletea commands off the event loop.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/commit"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Model is the bubbletea model of one board
type Model struct {
	ctx    context.Context
	ctrl   *board.Controller
	events <-chan events.Event

	keys   keyMap
	help   help.Model
	styles styles

	width, height int
	loaded        bool

	focusLane  int
	focusCard  int
	laneOffset int                  // first visible lane
	scroll     map[types.LaneID]int // first visible card per lane

	kb *keyboardDrag

	notifications []notification
	notifySeq     int
	notifyTTL     time.Duration
}

// keyboardDrag tracks a drag driven by the keyboard. Slots index the lanes
// as they were when the card was picked up.
type keyboardDrag struct {
	card     types.CardID
	origin   map[types.LaneID][]models.Card
	fromLane int
	fromSlot int
	lane     int
	slot     int
}

type fetchedMsg struct{ result board.FetchResult }

type settledMsg struct{ settlement commit.Settlement }

type invalidatedMsg struct{ event events.Event }

type notifyMsg struct {
	level   Level
	message string
}

// New creates the board model. ch may be nil when live updates are off.
func New(ctx context.Context, ctrl *board.Controller, cfg *config.Config, ch <-chan events.Event) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		events:    ch,
		keys:      newKeyMap(cfg.KeyMappings),
		help:      help.New(),
		styles:    newStyles(cfg.Theme),
		scroll:    make(map[types.LaneID]int),
		notifyTTL: defaultNotifyTTL,
	}
}

// Init loads the board and starts listening for invalidations
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.ctrl.Refresh()), m.listen())
}

func (m *Model) fetch(f *board.Fetch) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return fetchedMsg{result: f.Run(ctx)}
	}
}

func (m *Model) dispatch(b *commit.Batch) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return settledMsg{settlement: b.Dispatch(ctx)}
	}
}

func (m *Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ctx, ch := m.ctx, m.events
	return func() tea.Msg {
		select {
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			return invalidatedMsg{event: e}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case fetchedMsg:
		if err := m.ctrl.ApplyFetch(msg.result); err != nil {
			return m, m.notify(LevelError, "Could not load board: "+err.Error())
		}
		m.loaded = true
		m.clampFocus()
		return m, nil

	case settledMsg:
		cmds := []tea.Cmd{m.fetch(m.ctrl.Reconcile())}
		if err := m.ctrl.Settle(msg.settlement); err != nil {
			cmds = append(cmds, m.notify(LevelError, "Move not saved, board restored"))
		}
		if m.kb != nil && m.ctrl.State() != drag.Active {
			m.kb = nil
		}
		m.clampFocus()
		return m, tea.Batch(cmds...)

	case invalidatedMsg:
		cmds := []tea.Cmd{m.listen()}
		if msg.event.Matches(m.ctrl.Owner()) {
			cmds = append(cmds, m.fetch(m.ctrl.Refresh()))
		}
		return m, tea.Batch(cmds...)

	case notifyMsg:
		return m, m.notify(msg.level, msg.message)

	case expireMsg:
		m.expire(msg.id)
		return m, nil
	}
	return m, nil
}

// focusedCard returns the card under the keyboard cursor
func (m *Model) focusedCard() (models.Card, bool) {
	lanes := m.ctrl.Lanes()
	if m.focusLane >= len(lanes) {
		return models.Card{}, false
	}
	col := m.ctrl.Column(lanes[m.focusLane])
	if m.focusCard < 0 || m.focusCard >= len(col) {
		return models.Card{}, false
	}
	return col[m.focusCard], true
}

// focusOn moves the cursor to card id wherever it is now rendered
func (m *Model) focusOn(id types.CardID) {
	for i, lane := range m.ctrl.Lanes() {
		for k, c := range m.ctrl.Column(lane) {
			if c.ID == id {
				m.focusLane, m.focusCard = i, k
				m.ensureVisible()
				return
			}
		}
	}
}

func (m *Model) clampFocus() {
	if m.kb != nil {
		return
	}
	lanes := m.ctrl.Lanes()
	m.focusLane = clamp(m.focusLane, 0, len(lanes)-1)
	if len(lanes) > 0 {
		m.focusCard = clamp(m.focusCard, 0, len(m.ctrl.Column(lanes[m.focusLane]))-1)
	}
	m.ensureVisible()
}

func (m *Model) moveFocusLane(delta int) {
	m.focusLane += delta
	m.clampFocus()
}

func (m *Model) moveFocusCard(delta int) {
	m.focusCard += delta
	m.clampFocus()
}

// ensureVisible scrolls so the focused lane and card are on screen
func (m *Model) ensureVisible() {
	lanes := m.ctrl.Lanes()
	if len(lanes) == 0 || m.width == 0 {
		return
	}
	l := m.layout()
	if m.focusLane < m.laneOffset {
		m.laneOffset = m.focusLane
	}
	if m.focusLane >= m.laneOffset+l.visibleLanes {
		m.laneOffset = m.focusLane - l.visibleLanes + 1
	}
	m.laneOffset = clamp(m.laneOffset, 0, len(lanes)-l.visibleLanes)

	lane := lanes[m.focusLane]
	s := m.scroll[lane]
	if m.focusCard < s {
		s = m.focusCard
	}
	if l.cardSlots > 0 && m.focusCard >= s+l.cardSlots {
		s = m.focusCard - l.cardSlots + 1
	}
	m.scroll[lane] = max(s, 0)
}

// scrollLanes shifts the visible lanes, dragging the cursor along
func (m *Model) scrollLanes(delta int) {
	lanes := m.ctrl.Lanes()
	l := m.layout()
	m.laneOffset = clamp(m.laneOffset+delta, 0, len(lanes)-l.visibleLanes)
	m.focusLane = clamp(m.focusLane, m.laneOffset, m.laneOffset+l.visibleLanes-1)
	m.clampFocus()
}

// scrollLane scrolls the cards of the lane under x
func (m *Model) scrollLane(x, delta int) {
	l := m.layout()
	lanes := m.ctrl.Lanes()
	idx := m.laneOffset + x/laneWidth
	if x < 0 || x/laneWidth >= l.visibleLanes || idx >= len(lanes) {
		return
	}
	lane := lanes[idx]
	m.scroll[lane] = clamp(m.scroll[lane]+delta, 0, len(m.ctrl.Column(lane))-l.cardSlots)
}

// clamp bounds v to [lo, hi]; hi below lo yields lo
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
