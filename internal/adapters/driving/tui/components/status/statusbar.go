// Package status provides the query status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// State is what the query view is currently doing.
type State string

// Bar states.
const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateQuerying State = "querying"
	StateError    State = "error"
	StateHelp     State = "help"
	StateResults  State = "results"
)

// Summary condenses one query's matches.
type Summary struct {
	Matches    int
	Divergence int
	Markers    int
}

// Summarise counts the matches of a single query. Every match of a query
// shares the minimum divergence, so the first row's value stands for all.
func Summarise(results []domain.QueryResult) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	markers := make(map[string]struct{})
	for _, r := range results {
		markers[r.Marker] = struct{}{}
	}
	return Summary{
		Matches:    len(results),
		Divergence: results[0].Divergence,
		Markers:    len(markers),
	}
}

// String renders the summary for the status line.
func (s Summary) String() string {
	if s.Matches == 0 {
		return "No matches"
	}
	noun := "matches"
	if s.Matches == 1 {
		noun = "match"
	}
	line := fmt.Sprintf("%s %s at divergence %d", humanize.Comma(int64(s.Matches)), noun, s.Divergence)
	if s.Markers > 1 {
		line += fmt.Sprintf(" across %d markers", s.Markers)
	}
	return line
}

// Bar shows the query state on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	summary Summary
	width   int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left := s.left()
	right := s.hints()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) left() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading database...")
	case StateQuerying:
		return s.styles.Muted.Render("Querying...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateResults:
		return s.styles.Normal.Render(s.summary.String())
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) hints() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateResults && s.summary.Matches > 0 {
		bindings = s.keymap.ResultsHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, hint(b))
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

func hint(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

// SetState sets the current state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the current state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the error message shown in StateError.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetResults records the matches of the last query and switches to
// StateResults.
func (s *Bar) SetResults(results []domain.QueryResult) {
	s.summary = Summarise(results)
	s.state = StateResults
	s.message = ""
}

// Summary returns the summary of the last query.
func (s *Bar) Summary() Summary { return s.summary }

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the bar width.
func (s *Bar) Width() int { return s.width }

// Clear resets the bar to StateReady.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.summary = Summary{}
}
