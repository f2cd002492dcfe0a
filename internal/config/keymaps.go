package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	PrevLane    string `yaml:"prev_lane"`
	NextLane    string `yaml:"next_lane"`
	PrevCard    string `yaml:"prev_card"`
	NextCard    string `yaml:"next_card"`
	ScrollLeft  string `yaml:"scroll_left"`
	ScrollRight string `yaml:"scroll_right"`

	// Keyboard drag: pick up and drop share a key
	PickUp     string `yaml:"pick_up"`
	CancelDrag string `yaml:"cancel_drag"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevLane:    "h",
		NextLane:    "l",
		PrevCard:    "k",
		NextCard:    "j",
		ScrollLeft:  "[",
		ScrollRight: "]",

		PickUp:     " ",
		CancelDrag: "esc",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	fill(&k.PrevLane, defaults.PrevLane)
	fill(&k.NextLane, defaults.NextLane)
	fill(&k.PrevCard, defaults.PrevCard)
	fill(&k.NextCard, defaults.NextCard)
	fill(&k.ScrollLeft, defaults.ScrollLeft)
	fill(&k.ScrollRight, defaults.ScrollRight)
	fill(&k.PickUp, defaults.PickUp)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
