package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the browser TUI. Base supplies
// Up/Down, Confirm (open or run), Back (stop the run, else go up), Help
// and Quit.
type KeyMap struct {
	keymap.Base
	Parent      key.Binding
	NextProject key.Binding
	PrevProject key.Binding
	Edit        key.Binding
	Reload      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Parent, k.NextProject, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.Parent,
		k.NextProject,
		k.PrevProject,
		k.Edit,
		k.Reload,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	Parent: key.NewBinding(
		key.WithKeys("backspace", "left", "h"),
		key.WithHelp("←/h", "parent group"),
	),
	NextProject: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next project"),
	),
	PrevProject: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous project"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit projects file"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
}
