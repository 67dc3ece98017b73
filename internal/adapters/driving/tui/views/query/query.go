// Package query provides the divergence query view for the TUI.
package query

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// View represents the query view with input, match list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SequenceInput
	list      *list.ResultList
	statusbar *status.Bar

	queryService driving.QueryService
	db           *domain.SequenceDatabase
	opts         domain.QueryOptions
	ctx          context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a sequence, false = navigating matches
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewSequenceInput(s),
		list:         list.NewResultList(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDatabase sets the database that queries run against.
func (v *View) SetDatabase(db *domain.SequenceDatabase) {
	v.db = db
}

// SetOptions sets the worker and shard options used for queries.
func (v *View) SetOptions(opts domain.QueryOptions) {
	v.opts = opts
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			sequence := v.input.Sequence()
			if sequence == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateQuerying)
			v.focusInput = false
			v.input.Blur()
			return v, v.performQuery(sequence)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if key.Matches(msg, v.keymap.NewQuery) {
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// performQuery runs a single literal query against the loaded database.
func (v *View) performQuery(sequence string) tea.Cmd {
	ctx, svc, db, opts := v.ctx, v.queryService, v.db, v.opts
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}
		if db == nil {
			return messages.ErrorOccurred{Err: ErrNoDatabase}
		}

		records := []domain.QueryRecord{domain.LiteralQuery(sequence)}
		results, err := svc.Query(ctx, records, db, opts)
		return messages.QueryCompleted{Sequence: sequence, Results: results, Err: err}
	}
}

// handleQueryCompleted processes query results.
func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetResults(msg.Results)

	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("otuscan")
	if v.db != nil {
		header += v.styles.Muted.Render(
			"  " + pluralise(v.db.Len(), "entry", "entries") + " across " +
				pluralise(len(v.db.Markers()), "marker", "markers"))
	}
	sections = append(sections, header, "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func pluralise(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Sequence returns the current query sequence.
func (v *View) Sequence() string {
	return v.input.Sequence()
}

// SetSequence sets the query input.
func (v *View) SetSequence(sequence string) {
	v.input.SetValue(sequence)
}

// Results returns the current result rows.
func (v *View) Results() []domain.QueryResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected row.
func (v *View) SelectedResult() *domain.QueryResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
