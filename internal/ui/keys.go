package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Tabs   key.Binding

	// Task Actions
	Add      key.Binding
	Edit     key.Binding
	Why      key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Priority key.Binding
	Today    key.Binding

	// Views
	TasksView    key.Binding
	UpcomingView key.Binding
	NotesView    key.Binding

	// Appearance
	ThemeMode   key.Binding
	ThemeScheme key.Binding

	// General
	Help key.Binding
	Quit key.Binding
	Back key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Tabs: key.NewBinding(
			key.WithKeys("h", "l"),
			key.WithHelp("h/l", "category"),
		),

		// Task Actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Why: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "why"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle done"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "move to today"),
		),

		// Views
		TasksView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tasks"),
		),
		UpcomingView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "upcoming"),
		),
		NotesView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "mind dump"),
		),

		// Appearance
		ThemeMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "light/dark"),
		),
		ThemeScheme: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "color scheme"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Tabs},
		{k.Add, k.Edit, k.Why, k.Delete},
		{k.Toggle, k.Priority, k.Today},
		{k.TasksView, k.UpcomingView, k.NotesView},
		{k.ThemeMode, k.ThemeScheme, k.Help, k.Quit},
	}
}
