package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/services"
)

func newReadyApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// load runs the database loader and feeds the result back into app.
func load(t *testing.T, app *App) {
	t.Helper()
	msg := app.loadDatabase()()
	app.Update(msg)
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Database: &MockDatabaseService{}})

	assert.ErrorIs(t, err, ErrMissingQueryService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_LoadDatabase(t *testing.T) {
	app := newReadyApp(t, newTestPorts())

	load(t, app)

	require.NotNil(t, app.Database())
	assert.Equal(t, 2, app.Database().Len())
	assert.NoError(t, app.Err())
}

func TestApp_LoadDatabase_NeverBuilt(t *testing.T) {
	ports := newTestPorts()
	ports.Database = &MockDatabaseService{InfoErr: domain.ErrNotFound}
	app := newReadyApp(t, ports)

	load(t, app)

	assert.NoError(t, app.Err())
	app.Update(messages.ViewChanged{View: messages.ViewDatabase})
	assert.Contains(t, app.View(), "No database has been built yet.")
}

func TestApp_LoadDatabase_OpenFails(t *testing.T) {
	ports := newTestPorts()
	ports.Database = &MockDatabaseService{OpenErr: errors.New("locked")}
	app := newReadyApp(t, ports)

	load(t, app)

	assert.EqualError(t, app.Err(), "locked")
	assert.Nil(t, app.Database())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.Equal(t, app, model)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "otuscan")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newReadyApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newReadyApp(t, newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_MenuNavigatesToQuery(t *testing.T) {
	app := newReadyApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewQuery, app.CurrentView())
	assert.Contains(t, app.View(), "Query:")
}

func TestApp_QueryRoundTrip(t *testing.T) {
	ports := &Ports{
		Query:    services.NewQueryService(),
		Database: &MockDatabaseService{Entries: testEntries()},
	}
	app := newReadyApp(t, ports)
	load(t, app)
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ACGTACGA")})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	require.NoError(t, app.Err())
	results := app.queryView.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Divergence)
	assert.Equal(t, "rpsB", results[0].Marker)
	assert.Contains(t, app.View(), "s1;rpsB")
}

func TestApp_QueryUsesWorkerSetting(t *testing.T) {
	var got domain.QueryOptions
	settings := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.SetWorkers(3))

	ports := newTestPorts()
	ports.Settings = settings
	ports.Query = &MockQueryService{
		QueryFunc: func(
			_ context.Context, _ []domain.QueryRecord, _ *domain.SequenceDatabase, opts domain.QueryOptions,
		) ([]domain.QueryResult, error) {
			got = opts
			return nil, nil
		},
	}
	app := newReadyApp(t, ports)
	load(t, app)
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ACGT")})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 3, got.Workers)
}

func TestApp_ErrorForwardedToQueryView(t *testing.T) {
	app := newReadyApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewQuery})

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "Error: boom")
}

func TestApp_DatabaseView(t *testing.T) {
	app := newReadyApp(t, newTestPorts())
	load(t, app)

	app.Update(messages.ViewChanged{View: messages.ViewDatabase})
	out := app.View()

	assert.Contains(t, out, "build-1")
	assert.Contains(t, out, "rplK")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd, "reload opens the database again")
	app.Update(cmd())
	assert.Contains(t, app.View(), "build-1")
}

func TestApp_SettingsView(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = services.NewSettingsService(memory.NewConfigStore())
	app := newReadyApp(t, ports)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "Query workers")
}

func TestApp_HelpView(t *testing.T) {
	app := newReadyApp(t, newTestPorts())

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "alignment")
	assert.Contains(t, app.View(), "more workers")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_EscFromViewsReturnsToMenu(t *testing.T) {
	views := []messages.ViewType{messages.ViewQuery, messages.ViewDatabase}

	for _, view := range views {
		t.Run(view.String(), func(t *testing.T) {
			app := newReadyApp(t, newTestPorts())
			app.Update(messages.ViewChanged{View: view})

			_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
			require.NotNil(t, cmd)
			app.Update(cmd())

			assert.Equal(t, messages.ViewMenu, app.CurrentView())
		})
	}
}
