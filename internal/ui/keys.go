package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Tab switching
	TabHome    key.Binding
	TabConfig  key.Binding
	TabFiles   key.Binding
	TabConsole key.Binding

	// Connection
	EditAddress key.Binding
	Connect     key.Binding

	// Transport
	Play       key.Binding
	PlayLoop   key.Binding
	PlaySingle key.Binding
	Stop       key.Binding
	Record     key.Binding
	Preview    key.Binding
	Rewind     key.Binding
	Forward    key.Binding
	PrevClip   key.Binding
	NextClip   key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Files
	Rename  key.Binding
	Delete  key.Binding
	Refresh key.Binding

	// Console
	Command         key.Binding
	ToggleFollow    key.Binding
	ToggleLogSource key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		// Tab switching
		TabHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		TabConfig: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Config"),
		),
		TabFiles: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Files"),
		),
		TabConsole: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Console"),
		),

		// Connection
		EditAddress: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Edit address"),
		),
		Connect: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Connect/disconnect"),
		),

		// Transport
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Play"),
		),
		PlayLoop: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Play loop"),
		),
		PlaySingle: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Play single clip"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop"),
		),
		Record: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Record"),
		),
		Preview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Preview"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Rewind"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Fast forward"),
		),
		PrevClip: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous clip"),
		),
		NextClip: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next clip"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next option"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		// Files
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Rename file"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete file"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Refresh listing"),
		),

		// Console
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "Enter command"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		ToggleLogSource: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Toggle device/app log"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.TabHome, k.TabConfig, k.TabFiles, k.TabConsole},
		{k.EditAddress, k.Connect},
		{k.Play, k.PlayLoop, k.PlaySingle, k.Stop, k.Record, k.Preview},
		{k.Rewind, k.Forward, k.PrevClip, k.NextClip},
		{k.Up, k.Down, k.Left, k.Right, k.Confirm},
		{k.Rename, k.Delete, k.Refresh},
		{k.Command, k.ToggleFollow, k.ToggleLogSource},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
