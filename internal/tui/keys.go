package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/rileyhilliard/tfui/internal/terraform"
)

// keyMap holds the console pane bindings. While the form has focus only
// Focus and ForceQuit are intercepted; everything else goes to the form.
type keyMap struct {
	Init        key.Binding
	Plan        key.Binding
	Apply       key.Binding
	DestroyPlan key.Binding
	Destroy     key.Binding
	Refresh     key.Binding
	Stop        key.Binding
	Focus       key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	Init:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "init")),
	Plan:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plan")),
	Apply:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	DestroyPlan: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "destroy plan")),
	Destroy:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "destroy")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload vars")),
	Stop:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
	Focus:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "switch pane")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
	Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// commandKeys maps bindings to the terraform command they run.
var commandKeys = []struct {
	binding *key.Binding
	command terraform.Command
}{
	{&keys.Init, terraform.Init},
	{&keys.Plan, terraform.Plan},
	{&keys.Apply, terraform.Apply},
	{&keys.DestroyPlan, terraform.DestroyPlan},
	{&keys.Destroy, terraform.Destroy},
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Init, k.Plan, k.Apply, k.DestroyPlan, k.Destroy, k.Stop, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Init, k.Plan, k.Apply, k.DestroyPlan, k.Destroy},
		{k.Refresh, k.Stop, k.Focus},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}
