package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// boardKeys are the bindings of the main screen.
type boardKeys struct {
	Quit     key.Binding
	SwitchTo key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Prev     key.Binding
	Next     key.Binding
	PageSize key.Binding
	Search   key.Binding
	Refresh  key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Restore  key.Binding
	Purge    key.Binding
	Help     key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SwitchTo: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "books/trash"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→", "next page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page size"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "R"),
			key.WithHelp("R", "reload"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Purge: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "purge"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// forTab enables the bindings that work on the displayed tab, so help only
// lists what works. Row actions also need a selected row.
func (k *boardKeys) forTab(trash, selected bool) {
	k.New.SetEnabled(!trash)
	k.Edit.SetEnabled(!trash && selected)
	k.Delete.SetEnabled(!trash && selected)
	k.Restore.SetEnabled(trash && selected)
	k.Purge.SetEnabled(trash && selected)
}

// rowAction reports whether msg is one of the tab's row actions, enabled or
// not.
func (k boardKeys) rowAction(msg tea.KeyMsg, trash bool) bool {
	actions := []key.Binding{k.Edit, k.Delete}
	if trash {
		actions = []key.Binding{k.Restore, k.Purge}
	}
	for _, a := range actions {
		for _, s := range a.Keys() {
			if msg.String() == s {
				return true
			}
		}
	}
	return false
}

// ShortHelp implements help.KeyMap.
func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTo, k.Search, k.New, k.Edit, k.Delete, k.Restore, k.Purge, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Prev, k.Next, k.PageSize},
		{k.SwitchTo, k.Search, k.Refresh},
		{k.New, k.Edit, k.Delete, k.Restore, k.Purge},
		{k.Help, k.Quit},
	}
}
