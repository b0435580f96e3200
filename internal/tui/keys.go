package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Bottom navigation.
	Feed        key.Binding
	Restaurants key.Binding
	Orders      key.Binding
	Profile     key.Binding
	Cart        key.Binding

	// Social toggles. Follow and Subscribe apply to the selected reel's
	// restaurant on the feed and to the open restaurant on its detail page.
	Like      key.Binding
	Follow    key.Binding
	Subscribe key.Binding

	// Cart editing.
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding

	EditAddress key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("Esc", "back"),
	),
	Feed: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "feed"),
	),
	Restaurants: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "restaurants"),
	),
	Orders: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "orders"),
	),
	Profile: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "profile"),
	),
	Cart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cart"),
	),
	Like: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "like"),
	),
	Follow: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "follow"),
	),
	Subscribe: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "subscribe"),
	),
	Increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "less"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	EditAddress: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit address"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
