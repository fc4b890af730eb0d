package tui

import (
	"charm.land/bubbles/v2/key"
)

type keyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Focus     key.Binding
	Up        key.Binding
	Down      key.Binding
	Start     key.Binding
	Stop      key.Binding
	Restart   key.Binding
	Uninstall key.Binding
	Upload    key.Binding
	Filter    key.Binding
	Open      key.Binding
	SaveAll   key.Binding
	Dismiss   key.Binding
	Preview   key.Binding
	Reload    key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Focus:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "status panel")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stop")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Uninstall: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "uninstall")),
		Upload:    key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a/A", "upload/+start")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		SaveAll:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save all")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Preview:   key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p", "preview")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// helpFor returns the bindings shown in the footer for the current context.
func (k keyMap) helpFor(t tab, f focus) []key.Binding {
	if f == focusStatus {
		return []key.Binding{k.Up, k.Down, k.Preview, k.Dismiss, k.Focus, k.Quit}
	}
	switch t {
	case tabBundles:
		return []key.Binding{k.Start, k.Stop, k.Restart, k.Uninstall, k.Upload, k.Filter, k.Open, k.NextTab, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Open, k.SaveAll, k.Reload, k.NextTab, k.Quit}
	}
}
