package config

// Theme defines the board colors. Empty fields take the preset's value.
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`

	LaneBorder     string `yaml:"lane_border"`
	DropLaneBorder string `yaml:"drop_lane_border"` // lane under the pointer during a drag
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	DraggedBorder  string `yaml:"dragged_border"`

	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`

	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
}

// DefaultTheme is the purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		LaneBorder:     "#5F87D7",
		DropLaneBorder: "#5FD75F",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DraggedBorder:  "#FFD700",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		InfoBg:         "#00005F",
		WarningFg:      "#FFD700",
		WarningBg:      "#875F00",
		ErrorFg:        "#FF0000",
		ErrorBg:        "#5F0000",
		StatusBarBg:    "#874BFD",
		StatusBarText:  "#D0D0D0",
	}
}

// MonochromeTheme is black and white
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		LaneBorder:     "#FFFFFF",
		DropLaneBorder: "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DraggedBorder:  "#D0D0D0",
		Title:          "#FFFFFF",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#FFFFFF",
		InfoBg:         "#1C1C1C",
		WarningFg:      "#FFFFFF",
		WarningBg:      "#3A3A3A",
		ErrorFg:        "#FFFFFF",
		ErrorBg:        "#585858",
		StatusBarBg:    "#3A3A3A",
		StatusBarText:  "#FFFFFF",
	}
}

func presetTheme(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// ApplyDefaults fills empty colors from the preset
func (t *Theme) ApplyDefaults() {
	preset := presetTheme(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	fill(&t.Accent, preset.Accent)
	fill(&t.LaneBorder, preset.LaneBorder)
	fill(&t.DropLaneBorder, preset.DropLaneBorder)
	fill(&t.CardBorder, preset.CardBorder)
	fill(&t.SelectedBorder, preset.SelectedBorder)
	fill(&t.DraggedBorder, preset.DraggedBorder)
	fill(&t.Title, preset.Title)
	fill(&t.Subtle, preset.Subtle)
	fill(&t.Normal, preset.Normal)
	fill(&t.InfoFg, preset.InfoFg)
	fill(&t.InfoBg, preset.InfoBg)
	fill(&t.WarningFg, preset.WarningFg)
	fill(&t.WarningBg, preset.WarningBg)
	fill(&t.ErrorFg, preset.ErrorFg)
	fill(&t.ErrorBg, preset.ErrorBg)
	fill(&t.StatusBarBg, preset.StatusBarBg)
	fill(&t.StatusBarText, preset.StatusBarText)
}
