package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the screen's key bindings. It implements help.KeyMap.
type keyMap struct {
	Identify        key.Binding
	Track           key.Binding
	TrackProperties key.Binding
	Logout          key.Binding

	Next    key.Binding
	Prev    key.Binding
	Press   key.Binding
	Dismiss key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Identify: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "identify"),
		),
		Track: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "track"),
		),
		TrackProperties: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "track with properties"),
		),
		Logout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "logout"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "down"),
			key.WithHelp("tab/→", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "up"),
			key.WithHelp("shift+tab/←", "previous button"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss survey"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Identify, k.Track, k.TrackProperties, k.Logout, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Identify, k.Track, k.TrackProperties, k.Logout},
		{k.Next, k.Prev, k.Press, k.Dismiss},
		{k.Help, k.Quit},
	}
}
