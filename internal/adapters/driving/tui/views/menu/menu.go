// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Selecting an item with Quit set exits the app.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View is the landing screen.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Query", Hint: "find the closest OTU windows", View: messages.ViewQuery},
			{Label: "Database", Hint: "inspect the loaded sequence database", View: messages.ViewDatabase},
			{Label: "Settings", Hint: "workers, output format, paths", View: messages.ViewSettings},
			{Label: "Help", Hint: "keys for every screen", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or opens the selected item.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.selected = max(v.selected-1, 0)
		case key.Matches(msg, v.keymap.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case key.Matches(msg, v.keymap.Select):
			return v, v.open(v.items[v.selected])
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) open(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("otuscan"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Marker Gene OTU Queries"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(item.Label))
			if item.Hint != "" {
				b.WriteString("  " + v.styles.Muted.Render(item.Hint))
			}
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.Hints(v.keymap.Up, v.keymap.Down, v.keymap.Select, v.keymap.Quit)))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index under the cursor.
func (v *View) Selected() int {
	return v.selected
}
