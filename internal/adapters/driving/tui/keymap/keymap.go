// Package keymap defines keybindings for the TUI.
package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the views react to.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding
	Up   key.Binding
	Down key.Binding

	// Query submits the typed sequence; Select opens a menu entry.
	Query  key.Binding
	Select key.Binding

	// NewQuery clears the input after results are shown.
	NewQuery key.Binding

	// Alignment toggles the per-base comparison of the selected match.
	Alignment key.Binding

	// Reload re-reads the database from its store.
	Reload key.Binding

	// Increase and Decrease step the worker count in settings.
	Increase key.Binding
	Decrease key.Binding

	// Change toggles, cycles or edits the selected setting.
	Change key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      binding("q", "quit", "q", "ctrl+c"),
		Help:      binding("?", "help", "?"),
		Back:      binding("esc", "back", "esc"),
		Up:        binding("↑/k", "up", "up", "k"),
		Down:      binding("↓/j", "down", "down", "j"),
		Query:     binding("enter", "query", "enter"),
		Select:    binding("enter", "select", "enter"),
		NewQuery:  binding("n", "new query", "n"),
		Alignment: binding("a", "alignment", "a"),
		Reload:    binding("r", "reload", "r"),
		Increase:  binding("+/→", "more workers", "+", "right", "l"),
		Decrease:  binding("-/←", "fewer workers", "-", "left", "h"),
		Change:    binding("enter", "change", "enter", " "),
	}
}

// ShortHelp returns the bindings shown when nothing more specific applies.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp returns the bindings shown while browsing matches.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewQuery, k.Up, k.Alignment, k.Back}
}

// Section is a titled group of bindings on the help screen.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections returns the help screen, one section per view.
func (k *KeyMap) Sections() []Section {
	return []Section{
		{"Menu", []key.Binding{k.Up, k.Down, k.Select, k.Quit}},
		{"Query", []key.Binding{k.Query, k.Back}},
		{"Matches", []key.Binding{k.Up, k.Down, k.Alignment, k.NewQuery}},
		{"Database", []key.Binding{k.Reload, k.Back}},
		{"Settings", []key.Binding{k.Up, k.Down, k.Change, k.Increase, k.Decrease, k.Back}},
	}
}

// Hints renders bindings on one line as "[key] desc".
func Hints(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
