package driving

import "github.com/custodia-labs/otuscan/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetWorkers updates the number of concurrent query workers.
	SetWorkers(workers int) error

	// SetOutputFormat updates the default result format.
	SetOutputFormat(format domain.OutputFormat) error

	// SetDatabasePath updates the default database directory.
	SetDatabasePath(path string) error

	// SetIncludeInserts updates whether windows carry lower-case inserts.
	SetIncludeInserts(include bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
