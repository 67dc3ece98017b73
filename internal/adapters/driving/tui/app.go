package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/views/database"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	queryView    *query.View
	databaseView *database.View
	settingsView *settings.View

	// db is the snapshot every query runs against.
	db *domain.SequenceDatabase

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		queryView:    query.NewView(s, km, ports.Query),
		databaseView: database.NewView(s),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.queryView.WithContext(ctx)
	return a
}

// Init implements tea.Model. The database loads in the background while
// the menu is shown.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("otuscan"),
		a.loadDatabase(),
	)
}

// loadDatabase opens the database and reads its build metadata.
func (a *App) loadDatabase() tea.Cmd {
	ctx, svc := a.ctx, a.ports.Database
	return func() tea.Msg {
		db, err := svc.Open(ctx)
		if err != nil {
			return messages.DatabaseLoaded{Err: err}
		}
		info, err := svc.Info(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return messages.DatabaseLoaded{Database: db}
		}
		return messages.DatabaseLoaded{Database: db, Info: info, Err: err}
	}
}

// queryOptions reads worker settings, falling back to defaults.
func (a *App) queryOptions() domain.QueryOptions {
	if a.ports.Settings == nil {
		return domain.QueryOptions{}
	}
	s, err := a.ports.Settings.Get()
	if err != nil {
		return domain.QueryOptions{}
	}
	return domain.QueryOptions{Workers: s.Query.Workers}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateCurrent(msg)

	case messages.DatabaseLoaded:
		a.err = msg.Err
		a.db = msg.Database
		a.queryView.SetDatabase(msg.Database)
		a.databaseView, cmd = a.databaseView.Update(msg)
		return a, cmd

	case messages.ReloadDatabase:
		return a, a.loadDatabase()

	case messages.QueryCompleted:
		a.err = msg.Err
		a.queryView, cmd = a.queryView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewQuery:
			a.queryView.Reset()
			a.queryView.SetOptions(a.queryOptions())
			return a, a.queryView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewDatabase, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewQuery {
			a.queryView, cmd = a.queryView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewDatabase:
		a.databaseView, cmd = a.databaseView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, a.keymap.Back, a.keymap.Quit) {
			a.currentView = messages.ViewMenu
		}
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewDatabase:
		return a.databaseView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, section := range a.keymap.Sections() {
		b.WriteString(a.styles.Subtitle.Render(section.Title))
		b.WriteString("\n")
		for _, binding := range section.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("In a query, type or paste a window sequence and press enter."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render(keymap.Hints(a.keymap.Back)))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Database returns the loaded database, or nil before loading finishes.
func (a *App) Database() *domain.SequenceDatabase {
	return a.db
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.queryView.SetDimensions(width, height)
	a.databaseView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
