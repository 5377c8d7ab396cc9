package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	toggleHelp    key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	search        key.Binding
	newCombo      key.Binding
	duplicate     key.Binding
	deleteCombo   key.Binding
	editCombo     key.Binding
	selectAll     key.Binding
	deselectAll   key.Binding
	toggleSelect  key.Binding
	actionMenu    key.Binding
	toggleEnabled key.Binding
	preview       key.Binding
	yankSnippet   key.Binding
	sortColumn    key.Binding
	sortOrder     key.Binding
	settings      key.Binding
	save          key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "row up")),
		moveDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "row down")),
		search:        key.NewBinding(key.WithKeys("ctrl+f", "/"), key.WithHelp("ctrl+f", "search")),
		newCombo:      key.NewBinding(key.WithKeys("ctrl+n", "n"), key.WithHelp("ctrl+n", "new combo")),
		duplicate:     key.NewBinding(key.WithKeys("ctrl+shift+n", "c"), key.WithHelp("ctrl+shift+n", "duplicate")),
		deleteCombo:   key.NewBinding(key.WithKeys("delete", "d"), key.WithHelp("del", "delete")),
		editCombo:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		selectAll:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		deselectAll:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "deselect all")),
		toggleSelect:  key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "toggle select")),
		actionMenu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "actions")),
		toggleEnabled: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "enable/disable")),
		preview:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview snippet")),
		yankSnippet:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy snippet")),
		sortColumn:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		sortOrder:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort order")),
		settings:      key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save now")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newCombo, k.editCombo, k.deleteCombo, k.search, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.newCombo, k.editCombo, k.duplicate, k.deleteCombo, k.toggleEnabled, k.preview, k.yankSnippet},
		{k.moveUp, k.moveDown, k.toggleSelect, k.selectAll, k.deselectAll},
		{k.search, k.actionMenu, k.sortColumn, k.sortOrder, k.settings, k.save, k.toggleHelp, k.quit},
	}
}
