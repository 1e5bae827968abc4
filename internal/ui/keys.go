package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Form
	NextField  key.Binding
	PrevField  key.Binding
	Run        key.Binding
	Toggle     key.Binding
	ToggleBack key.Binding

	// Results
	Rerun        key.Binding
	EditForm     key.Binding
	ToggleWrap   key.Binding
	ToggleLineNo key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Search
	Search     key.Binding
	SearchMode key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	Confirm    key.Binding

	// Bookmarks and export
	Bookmark       key.Binding
	NextBookmark   key.Binding
	PrevBookmark   key.Binding
	ClearBookmarks key.Binding
	Export         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / clear search"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Run query"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "right", "l"),
			key.WithHelp("space/→", "Change option"),
		),
		ToggleBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Change option back"),
		),

		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Re-run last query"),
		),
		EditForm: key.NewBinding(
			key.WithKeys("tab", "f"),
			key.WithHelp("tab/f", "Edit filters"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Toggle wrap"),
		),
		ToggleLineNo: key.NewBinding(
			key.WithKeys("#"),
			key.WithHelp("#", "Toggle line numbers"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
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
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search results"),
		),
		SearchMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle search mode"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous match"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		Bookmark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Toggle bookmark"),
		),
		NextBookmark: key.NewBinding(
			key.WithKeys("'", "b"),
			key.WithHelp("'/b", "Next bookmark"),
		),
		PrevBookmark: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Previous bookmark"),
		),
		ClearBookmarks: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Clear bookmarks"),
		),
		Export: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Export results"),
		),
	}
}
