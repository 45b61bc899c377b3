package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Modify key.Binding
	Delete key.Binding
	Logout key.Binding
}

type editKeyMap struct {
	Submit    key.Binding
	LineBreak key.Binding
	Cancel    key.Binding
	Toggle    key.Binding
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
}

var listKeys = listKeyMap{
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
	Modify: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "modify")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Logout: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
}

var editKeys = editKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	// Terminals report shift+enter as enter; alt+enter is the line-break request.
	LineBreak: key.NewBinding(key.WithKeys("alt+enter")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Toggle:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "done")),
}

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Switch: key.NewBinding(key.WithKeys("ctrl+n")),
}

func (k listKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Modify, k.Delete, k.Logout}
}
