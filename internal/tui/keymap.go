package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	NextTab key.Binding
	PrevTab key.Binding

	Exec   key.Binding
	Yank   key.Binding
	Grab   key.Binding
	Search key.Binding

	AddSnippet   key.Binding
	AddFolder    key.Binding
	AddSeparator key.Binding
	AddTab       key.Binding
	Rename       key.Binding
	Color        key.Binding
	ColorTree    key.Binding
	Delete       key.Binding

	TabLeft  key.Binding
	TabRight key.Binding

	CycleExecMode key.Binding
	Help          key.Binding
	Quit          key.Binding
	Cancel        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),

		NextTab: key.NewBinding(key.WithKeys("tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab")),

		Exec:   key.NewBinding(key.WithKeys("enter")),
		Yank:   key.NewBinding(key.WithKeys("y")),
		Grab:   key.NewBinding(key.WithKeys("m", " ")),
		Search: key.NewBinding(key.WithKeys("/")),

		AddSnippet:   key.NewBinding(key.WithKeys("a")),
		AddFolder:    key.NewBinding(key.WithKeys("f")),
		AddSeparator: key.NewBinding(key.WithKeys("s")),
		AddTab:       key.NewBinding(key.WithKeys("t")),
		Rename:       key.NewBinding(key.WithKeys("r")),
		Color:        key.NewBinding(key.WithKeys("c")),
		ColorTree:    key.NewBinding(key.WithKeys("C")),
		Delete:       key.NewBinding(key.WithKeys("d")),

		TabLeft:  key.NewBinding(key.WithKeys("<")),
		TabRight: key.NewBinding(key.WithKeys(">")),

		CycleExecMode: key.NewBinding(key.WithKeys("X")),
		Help:          key.NewBinding(key.WithKeys("?")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Cancel:        key.NewBinding(key.WithKeys("esc")),
	}
}
