package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Left     key.Binding
	Right    key.Binding
	Help     key.Binding
	Simulate key.Binding

	// Reminder banner actions
	ReminderDone     key.Binding
	ReminderPostpone key.Binding
	ReminderLater    key.Binding
	ReminderDismiss  key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Left, k.Right, k.Quit, k.Help},
		{k.Simulate, k.ReminderDone, k.ReminderPostpone, k.ReminderLater, k.ReminderDismiss},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Left: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "prev tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next tab"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Simulate: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "simulate reminder"),
		),
		ReminderDone: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "reminder: done"),
		),
		ReminderPostpone: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "reminder: postpone"),
		),
		ReminderLater: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "reminder: later"),
		),
		ReminderDismiss: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "reminder: dismiss"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}
