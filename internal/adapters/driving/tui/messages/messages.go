// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// QueryChanged is sent when the query input changes.
type QueryChanged struct {
	Sequence string
}

// QueryCompleted carries query results back to the model.
type QueryCompleted struct {
	Sequence string
	Results  []domain.QueryResult
	Err      error
}

// ResultSelected is sent when a result row is selected.
type ResultSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the query input and results view.
	ViewQuery
	// ViewDatabase shows the loaded database.
	ViewDatabase
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	case ViewDatabase:
		return "database"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DatabaseLoaded carries the opened database and its build metadata.
// Info is nil when the store was never built.
type DatabaseLoaded struct {
	Database *domain.SequenceDatabase
	Info     *domain.DatabaseInfo
	Err      error
}

// ReloadDatabase asks the app to reopen the database.
type ReloadDatabase struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
