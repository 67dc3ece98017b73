// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// Field identifies one editable setting.
type Field int

const (
	FieldWorkers Field = iota
	FieldFormat
	FieldDatabasePath
	FieldInserts
	fieldCount
)

// maxWorkers caps the value reachable with the +/- keys.
const maxWorkers = 256

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	selected Field
	editing  bool
	path     textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	path := textinput.New()
	path.Placeholder = "~/.otuscan/db"
	path.CharLimit = 1024

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
		path:            path,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// save applies fn to the settings service and reports the outcome.
func (v *View) save(fn func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: fn(svc)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handlePathKeys(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.selected < fieldCount-1 {
			v.selected++
		}
	case key.Matches(msg, v.keymap.Increase):
		return v, v.adjust(1)
	case key.Matches(msg, v.keymap.Decrease):
		return v, v.adjust(-1)
	case key.Matches(msg, v.keymap.Change):
		return v, v.activate()
	}
	return v, nil
}

func (v *View) handlePathKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.path.Blur()
		return v, nil
	case tea.KeyEnter:
		v.editing = false
		v.path.Blur()
		path := strings.TrimSpace(v.path.Value())
		return v, v.save(func(s driving.SettingsService) error { return s.SetDatabasePath(path) })
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// activate toggles or cycles the selected setting.
func (v *View) activate() tea.Cmd {
	if v.settings == nil {
		return nil
	}

	switch v.selected {
	case FieldWorkers:
		return v.adjust(1)
	case FieldFormat:
		next := domain.OutputFormatJSON
		if v.settings.Query.Format == domain.OutputFormatJSON {
			next = domain.OutputFormatTSV
		}
		return v.save(func(s driving.SettingsService) error { return s.SetOutputFormat(next) })
	case FieldDatabasePath:
		v.editing = true
		v.path.SetValue(v.settings.Database.Path)
		return v.path.Focus()
	case FieldInserts:
		include := !v.settings.Windows.IncludeInserts
		return v.save(func(s driving.SettingsService) error { return s.SetIncludeInserts(include) })
	}
	return nil
}

// adjust changes the worker count by delta, clamped to [0, maxWorkers].
func (v *View) adjust(delta int) tea.Cmd {
	if v.settings == nil || v.selected != FieldWorkers {
		return nil
	}
	n := v.settings.Query.Workers + delta
	if n < 0 || n > maxWorkers {
		return nil
	}
	return v.save(func(s driving.SettingsService) error { return s.SetWorkers(n) })
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for f := Field(0); f < fieldCount; f++ {
		label, value := v.describe(f)
		line := fmt.Sprintf("%-18s %s", label, value)
		if f == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.InputField.Render(v.path.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render(keymap.Hints(v.keymap.Up, v.keymap.Change, v.keymap.Increase, v.keymap.Back)))
	}
	return b.String()
}

func (v *View) describe(f Field) (string, string) {
	s := v.settings
	switch f {
	case FieldWorkers:
		if s.Query.Workers <= 0 {
			return "Query workers", "all CPUs"
		}
		return "Query workers", fmt.Sprintf("%d", s.Query.Workers)
	case FieldFormat:
		return "Result format", s.Query.Format.Description()
	case FieldDatabasePath:
		if s.Database.Path == "" {
			return "Database path", "(default)"
		}
		return "Database path", s.Database.Path
	case FieldInserts:
		if s.Windows.IncludeInserts {
			return "Include inserts", "on"
		}
		return "Include inserts", "off"
	}
	return "", ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.path.Width = width - 10
}

// Reset returns to the first field and leaves edit mode.
func (v *View) Reset() {
	v.selected = FieldWorkers
	v.editing = false
	v.path.Blur()
	v.err = nil
}

// Selected returns the selected field.
func (v *View) Selected() Field {
	return v.selected
}

// Editing reports whether the database path is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
