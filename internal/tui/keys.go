package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Toggle    key.Binding
	Range     key.Binding
	PickTable key.Binding
	AddRow    key.Binding
	NewTable  key.Binding
	Delete    key.Binding
	DelTables key.Binding
	Fetch     key.Binding
	Submit    key.Binding
	Apply     key.Binding
	Cancel    key.Binding
	Save      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
	Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Toggle:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle select")),
	Range:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "range select")),
	PickTable: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "select table")),
	AddRow:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new row")),
	NewTable:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "new table")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete rows")),
	DelTables: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete tables")),
	Fetch:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),
	Submit:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
	Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
	Save:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write file")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func helpLine() string {
	bindings := []key.Binding{
		keys.Select, keys.Toggle, keys.Range, keys.AddRow, keys.Delete,
		keys.Fetch, keys.Submit, keys.Apply, keys.Cancel, keys.Save, keys.Quit,
	}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
