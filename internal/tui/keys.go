package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Small  key.Binding
	Medium key.Binding
	Large  key.Binding
	Custom key.Binding
	Delete key.Binding
	Goal   key.Binding
	Advice key.Binding
	Export key.Binding
	Tab    key.Binding
	Help   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Small: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "+100 ml"),
	),
	Medium: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "+250 ml"),
	),
	Large: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "+500 ml"),
	),
	Custom: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "custom amount"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Goal: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "edit goal"),
	),
	Advice: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "ask coach"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Small, k.Medium, k.Large, k.Custom, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Small, k.Medium, k.Large, k.Custom},
		{k.Delete, k.Goal, k.Advice, k.Export},
		{k.Up, k.Down, k.Tab, k.Enter, k.Back, k.Quit},
	}
}
