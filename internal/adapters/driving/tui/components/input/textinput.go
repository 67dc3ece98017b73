// Package input provides text input components for the TUI.
package input

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
)

// maxSequenceLength bounds a pasted query window.
const maxSequenceLength = 4096

// SequenceInput wraps a bubbles textinput for entering a query window.
type SequenceInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSequenceInput creates a new sequence input component.
func NewSequenceInput(s *styles.Styles) *SequenceInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Paste a window sequence..."
	ti.Focus()
	ti.CharLimit = maxSequenceLength
	ti.Width = 50

	return &SequenceInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (s *SequenceInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SequenceInput) Update(msg tea.Msg) (*SequenceInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the input.
func (s *SequenceInput) View() string {
	label := s.styles.Title.Render("Query: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the raw input value.
func (s *SequenceInput) Value() string {
	return s.textinput.Value()
}

// Sequence returns the input with all whitespace removed, so wrapped
// sequences pasted from a FASTA file query as one window.
func (s *SequenceInput) Sequence() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s.textinput.Value())
}

// SetValue sets the input value.
func (s *SequenceInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SequenceInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SequenceInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SequenceInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SequenceInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SequenceInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SequenceInput) Reset() {
	s.textinput.Reset()
}
