package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	add      key.Binding
	edit     key.Binding
	toggle   key.Binding
	remove   key.Binding
	search   key.Binding
	filter   key.Binding
	sort     key.Binding
	language key.Binding
	theme    key.Binding
	reload   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		language: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.add, k.edit, k.toggle, k.remove, k.search, k.filter, k.sort, k.language, k.theme}
}
