package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_BaseColoursDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Adenine, theme.Cytosine, theme.Guanine, theme.Thymine, theme.Failure} {
		require.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.Equal(t, DefaultTheme(), styles.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Accent = lipgloss.Color("#000001")

	styles := NewStyles(theme)

	assert.Same(t, theme, styles.Theme())
	assert.Equal(t, theme.Accent, styles.Title.GetForeground())
	assert.True(t, styles.Title.GetBold())
}

func TestStyles_Nucleotide(t *testing.T) {
	styles := DefaultStyles()
	theme := styles.Theme()

	tests := []struct {
		base byte
		want lipgloss.TerminalColor
	}{
		{'A', theme.Adenine},
		{'a', theme.Adenine},
		{'C', theme.Cytosine},
		{'g', theme.Guanine},
		{'T', theme.Thymine},
		{'-', theme.Frame},
		{'.', theme.Frame},
		{'N', theme.Text},
	}

	for _, tt := range tests {
		t.Run(string(tt.base), func(t *testing.T) {
			assert.Equal(t, tt.want, styles.Nucleotide(tt.base).GetForeground())
		})
	}
}

func TestStyles_MismatchStandsOut(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Theme().Failure, styles.Mismatch.GetBackground())
	assert.True(t, styles.Mismatch.GetBold())
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":      styles.Title,
		"Subtitle":   styles.Subtitle,
		"Normal":     styles.Normal,
		"Muted":      styles.Muted,
		"Selected":   styles.Selected,
		"Error":      styles.Error,
		"Warning":    styles.Warning,
		"InputField": styles.InputField,
		"StatusBar":  styles.StatusBar,
		"Help":       styles.Help,
		"Mismatch":   styles.Mismatch,
		"Gap":        styles.Gap,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render("ACGT"), "ACGT")
		})
	}
}
