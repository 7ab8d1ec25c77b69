package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings shown in the help overlay.
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	// Board
	Move   key.Binding
	Open   key.Binding
	Filter key.Binding
	Mine   key.Binding

	// Issues
	NewIssue key.Binding

	// Projects
	NewProject key.Binding
	Projects   key.Binding
	Settings   key.Binding

	// Global
	SignOut key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move issue"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter issues"),
		),
		Mine: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assigned to me"),
		),
		NewIssue: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new issue"),
		),
		NewProject: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new project"),
		),
		Projects: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "switch project"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "project settings"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sign out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// screenKeys is the subset of bindings one screen responds to.
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding  { return s.short }
func (s screenKeys) FullHelp() [][]key.Binding { return s.full }

// Board returns the bindings active on the kanban board.
func (k KeyMap) Board() help.KeyMap {
	return screenKeys{
		short: []key.Binding{k.Help, k.Back},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back},
			{k.Move, k.Open, k.Filter, k.Mine},
			{k.NewIssue, k.Projects, k.Settings, k.Help},
		},
	}
}

// Dashboard returns the bindings active on the dashboard. n and i mean
// different things here than on the board.
func (k KeyMap) Dashboard() help.KeyMap {
	newIssue := key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "new issue"))
	return screenKeys{
		short: []key.Binding{k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Enter},
			{k.NewProject, newIssue, k.Projects, k.Settings},
			{k.SignOut, k.Help, k.Quit},
		},
	}
}
