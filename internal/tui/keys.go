package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	ToggleView  key.Binding
	CheckUpdate key.Binding
	Cancel      key.Binding
	Language    key.Binding
}

// DefaultKeyMap returns the default global key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "lookup/status"),
		),
		CheckUpdate: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "check for updates"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel update"),
		),
		Language: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
	}
}
