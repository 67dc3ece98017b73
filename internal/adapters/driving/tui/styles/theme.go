// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the TUI colour palette. Interface colours come first, then
// one colour per nucleotide for rendering aligned hits.
type Theme struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Alert     lipgloss.Color
	Failure   lipgloss.Color
	Frame     lipgloss.Color
	Panel     lipgloss.Color

	Adenine  lipgloss.Color
	Cytosine lipgloss.Color
	Guanine  lipgloss.Color
	Thymine  lipgloss.Color
}

// DefaultTheme returns the default palette. Base colours follow the
// usual sequence viewer convention: A green, C blue, G amber, T red.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#2AA198"),
		Highlight: lipgloss.Color("#268BD2"),
		Text:      lipgloss.Color("#EEE8D5"),
		Dim:       lipgloss.Color("#839496"),
		Alert:     lipgloss.Color("#B58900"),
		Failure:   lipgloss.Color("#DC322F"),
		Frame:     lipgloss.Color("#586E75"),
		Panel:     lipgloss.Color("#073642"),

		Adenine:  lipgloss.Color("#859900"),
		Cytosine: lipgloss.Color("#6C71C4"),
		Guanine:  lipgloss.Color("#CB4B16"),
		Thymine:  lipgloss.Color("#D33682"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Mismatch marks hit bases that differ from the query.
	Mismatch lipgloss.Style

	// Gap renders alignment gaps and positions past the end of a hit.
	Gap lipgloss.Style

	bases map[byte]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	s := &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Highlight).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Failure),
		Warning:  fg(theme.Alert),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Panel).Padding(0, 1),
		Help:      fg(theme.Dim),
		Mismatch:  fg(theme.Text).Background(theme.Failure).Bold(true),
		Gap:       fg(theme.Frame),
	}

	s.bases = make(map[byte]lipgloss.Style, 8)
	for _, b := range []struct {
		letters string
		colour  lipgloss.Color
	}{
		{"Aa", theme.Adenine},
		{"Cc", theme.Cytosine},
		{"Gg", theme.Guanine},
		{"Tt", theme.Thymine},
	} {
		for i := 0; i < len(b.letters); i++ {
			s.bases[b.letters[i]] = fg(b.colour)
		}
	}

	return s
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Nucleotide returns the style for a matching base. Ambiguity codes and
// other letters fall back to Normal; gaps use Gap.
func (s *Styles) Nucleotide(c byte) lipgloss.Style {
	if c == '-' || c == '.' {
		return s.Gap
	}
	if st, ok := s.bases[c]; ok {
		return st
	}
	return s.Normal
}
