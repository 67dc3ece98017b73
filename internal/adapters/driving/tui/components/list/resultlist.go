// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// ResultList displays query result rows in a navigable list.
type ResultList struct {
	results       []domain.QueryResult
	selected      int
	showAlignment bool
	styles        *styles.Styles
	width         int
	height        int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "a":
			r.ToggleAlignment()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(r.results)+4)

	header := fmt.Sprintf("Matches (%d) at divergence %d", len(r.results), r.results[0].Divergence)
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	// Each row takes two lines plus the alignment block when shown.
	visibleCount := (r.height - 8) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one row with its lineage underneath.
func (r *ResultList) renderResult(index int, result *domain.QueryResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	label := result.Sample + ";" + result.Marker
	maxLabelLen := r.width - 24
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	label = truncate(label, maxLabelLen)

	stats := fmt.Sprintf("d=%d hits=%d", result.Divergence, result.NumHits)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, stats))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLabelLen, label)) +
			r.styles.Muted.Render(stats)
	}

	taxonomy := result.Taxonomy
	if taxonomy == "" {
		taxonomy = "(no taxonomy)"
	}
	line := titleLine + "\n" + r.styles.Muted.Render("    "+truncate(taxonomy, r.width-6))

	if r.showAlignment && index == r.selected {
		line += "\n" + r.renderAlignment(result.QuerySequence, result.HitSequence)
	}
	return line
}

// renderAlignment shows the query above the hit with differing bases
// highlighted. Positions past the shorter sequence count as differences.
func (r *ResultList) renderAlignment(query, hit string) string {
	maxLen := r.width - 10
	if maxLen < 20 {
		maxLen = 20
	}

	diff := Mismatches(query, hit)
	if len(diff) > maxLen {
		diff = diff[:maxLen]
	}

	var b strings.Builder
	for i, differs := range diff {
		c := byte('-')
		if i < len(hit) {
			c = hit[i]
		}
		style := r.styles.Nucleotide(c)
		if differs {
			style = r.styles.Mismatch
		}
		b.WriteString(style.Render(string(c)))
	}

	return r.styles.Muted.Render("    q: "+truncate(query, maxLen)) + "\n" +
		r.styles.Muted.Render("    h: ") + b.String()
}

// Mismatches reports, for every position up to the longer of a and b,
// whether the two sequences differ there. The number of true entries is
// the divergence between them.
func Mismatches(a, b string) []bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = i >= len(a) || i >= len(b) || a[i] != b[i]
	}
	return out
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []domain.QueryResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.QueryResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.QueryResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// ToggleAlignment shows or hides the alignment of the selected row.
func (r *ResultList) ToggleAlignment() {
	r.showAlignment = !r.showAlignment
}

// ShowingAlignment reports whether the alignment block is shown.
func (r *ResultList) ShowingAlignment() bool {
	return r.showAlignment
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
