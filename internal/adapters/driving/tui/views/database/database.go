// Package database provides the database overview view for the TUI.
package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// MarkerSummary aggregates the entries of one marker.
type MarkerSummary struct {
	Marker  string
	Entries int
	Samples int
	Hits    int
}

// View shows build metadata and a per-marker breakdown.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	info    *domain.DatabaseInfo
	markers []MarkerSummary
	err     error
	loaded  bool
	width   int
	height  int
	ready   bool
}

// NewView creates a new database view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, keymap: keymap.DefaultKeyMap()}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the database view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DatabaseLoaded:
		v.SetDatabase(msg.Database, msg.Info, msg.Err)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.Reload):
			v.loaded = false
			return v, func() tea.Msg {
				return messages.ReloadDatabase{}
			}
		}
	}
	return v, nil
}

// SetDatabase replaces the displayed database.
func (v *View) SetDatabase(db *domain.SequenceDatabase, info *domain.DatabaseInfo, err error) {
	v.loaded = true
	v.err = err
	v.info = info
	v.markers = Summarise(db)
}

// Summarise groups database entries by marker, sorted by marker name.
func Summarise(db *domain.SequenceDatabase) []MarkerSummary {
	if db.Len() == 0 {
		return nil
	}

	byMarker := make(map[string]*MarkerSummary)
	samples := make(map[string]map[string]bool)
	for _, e := range db.Entries() {
		m, ok := byMarker[e.Marker]
		if !ok {
			m = &MarkerSummary{Marker: e.Marker}
			byMarker[e.Marker] = m
			samples[e.Marker] = make(map[string]bool)
		}
		m.Entries++
		m.Hits += e.NumHits
		samples[e.Marker][e.Sample] = true
	}

	out := make([]MarkerSummary, 0, len(byMarker))
	for name, m := range byMarker {
		m.Samples = len(samples[name])
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Marker < out[j].Marker })
	return out
}

// View renders the database overview.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Database"))
	b.WriteString("\n\n")

	switch {
	case !v.loaded:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.info == nil:
		b.WriteString(v.styles.Warning.Render("No database has been built yet."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Run 'otuscan makedb --otu-table <file>' to build one."))
	default:
		v.renderInfo(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.Hints(v.keymap.Reload, v.keymap.Back)))
	return b.String()
}

func (v *View) renderInfo(b *strings.Builder) {
	row := func(label, value string) {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-10s", label)))
		b.WriteString(v.styles.Normal.Render(value))
		b.WriteString("\n")
	}

	row("Location", v.info.Location)
	row("Build", v.info.BuildID)
	if !v.info.BuiltAt.IsZero() {
		row("Built", humanize.Time(v.info.BuiltAt))
	}
	row("Entries", humanize.Comma(int64(v.info.Entries)))
	row("Markers", humanize.Comma(int64(v.info.Markers)))
	row("Samples", humanize.Comma(int64(v.info.Samples)))

	if len(v.markers) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("  %-16s %8s %8s %10s", "marker", "entries", "samples", "hits")))
	for _, m := range v.markers {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-16s %8d %8d %10s",
			m.Marker, m.Entries, m.Samples, humanize.Comma(int64(m.Hits)))))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Markers returns the per-marker breakdown.
func (v *View) Markers() []MarkerSummary {
	return v.markers
}
