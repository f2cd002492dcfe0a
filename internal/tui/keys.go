package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/lanes/internal/config"
)

// keyMap is the board's key bindings, built from the configured mappings
type keyMap struct {
	PrevLane    key.Binding
	NextLane    key.Binding
	PrevCard    key.Binding
	NextCard    key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PickUp      key.Binding
	CancelDrag  key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// keyNames maps a configured key to the names bubbletea may report for it
func keyNames(k string) []string {
	if k == " " || k == "space" {
		return []string{" ", "space"}
	}
	return []string{k}
}

func helpName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func newKeyMap(km config.KeyMappings) keyMap {
	bind := func(k, alt, desc string) key.Binding {
		keys := keyNames(k)
		helpKey := helpName(k)
		if alt != "" && alt != k {
			keys = append(keys, alt)
			helpKey += "/" + alt
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
	}

	return keyMap{
		PrevLane:    bind(km.PrevLane, "left", "prev lane"),
		NextLane:    bind(km.NextLane, "right", "next lane"),
		PrevCard:    bind(km.PrevCard, "up", "prev card"),
		NextCard:    bind(km.NextCard, "down", "next card"),
		ScrollLeft:  bind(km.ScrollLeft, "", "scroll left"),
		ScrollRight: bind(km.ScrollRight, "", "scroll right"),
		PickUp:      bind(km.PickUp, "", "pick up / drop"),
		CancelDrag:  bind(km.CancelDrag, "", "cancel drag"),
		Refresh:     bind(km.Refresh, "", "refresh"),
		Help:        bind(km.ShowHelp, "", "help"),
		Quit:        bind(km.Quit, "ctrl+c", "quit"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.CancelDrag, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevLane, k.NextLane, k.PrevCard, k.NextCard},
		{k.ScrollLeft, k.ScrollRight},
		{k.PickUp, k.CancelDrag},
		{k.Refresh, k.Help, k.Quit},
	}
}
