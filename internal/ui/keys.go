package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"today/internal/config"
)

type KeyMap struct {
	Quit            key.Binding
	Add             key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Confirm         key.Binding
	Submit          key.Binding
	Cancel          key.Binding
	ClearCompleted  key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	NextFilter      key.Binding
}

func newKeyMap(k config.Keymap) KeyMap {
	return KeyMap{
		Quit:            key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(label(k.Quit), "quit")),
		Add:             key.NewBinding(key.WithKeys(k.Add), key.WithHelp(label(k.Add), "add")),
		Up:              key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(label(k.Up), "up")),
		Down:            key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(label(k.Down), "down")),
		Toggle:          key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(label(k.Toggle), "toggle")),
		Delete:          key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(label(k.Delete), "delete")),
		Confirm:         key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(label(k.Confirm), "add task")),
		Submit:          key.NewBinding(key.WithKeys(k.Submit), key.WithHelp(label(k.Submit), "add task")),
		Cancel:          key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(label(k.Cancel), "cancel")),
		ClearCompleted:  key.NewBinding(key.WithKeys(k.ClearCompleted), key.WithHelp(label(k.ClearCompleted), "clear completed")),
		FilterAll:       key.NewBinding(key.WithKeys(k.FilterAll), key.WithHelp(label(k.FilterAll), "all")),
		FilterActive:    key.NewBinding(key.WithKeys(k.FilterActive), key.WithHelp(label(k.FilterActive), "active")),
		FilterCompleted: key.NewBinding(key.WithKeys(k.FilterCompleted), key.WithHelp(label(k.FilterCompleted), "completed")),
		NextFilter:      key.NewBinding(key.WithKeys(k.NextFilter), key.WithHelp(label(k.NextFilter), "next filter")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.NextFilter, k.ClearCompleted, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Add, k.Confirm, k.Submit, k.Cancel},
		{k.FilterAll, k.FilterActive, k.FilterCompleted, k.NextFilter},
		{k.ClearCompleted, k.Quit},
	}
}

// inputKeys is shown while the task input has focus.
type inputKeys struct {
	KeyMap
}

func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Submit, k.Cancel}
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
