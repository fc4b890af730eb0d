package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Icons is a set of glyphs used by the TUI.
type Icons struct {
	Active   string
	Inactive string
	Loading  string
	Info     string
	Warning  string
	Error    string
	Module   string
	Settings string
}

// NerdIcons requires a Nerd Font.
var NerdIcons = Icons{
	Active:   "\uf058",
	Inactive: "\uf10c",
	Loading:  "\U000F0772",
	Info:     "\uf05a",
	Warning:  "\uf071",
	Error:    "\uf057",
	Module:   "\uf1b2",
	Settings: "\uf013",
}

// PlainIcons works in any terminal.
var PlainIcons = Icons{
	Active:   "●",
	Inactive: "○",
	Loading:  "◌",
	Info:     "i",
	Warning:  "!",
	Error:    "x",
	Module:   "▪",
	Settings: "⚙",
}

// IconSet returns the nerd font icons when enabled, plain icons otherwise.
func IconSet(nerd bool) Icons {
	if nerd {
		return NerdIcons
	}
	return PlainIcons
}
