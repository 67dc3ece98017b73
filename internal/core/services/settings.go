package services

import (
	"fmt"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyQueryWorkers   = "query.workers"
	keyQueryFormat    = "query.format"
	keyDatabasePath   = "database.path"
	keyIncludeInserts = "windows.include_inserts"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Query: domain.QuerySettings{
			Workers: s.getInt(keyQueryWorkers, defaults.Query.Workers),
			Format:  s.getFormat(defaults.Query.Format),
		},
		Database: domain.DatabaseSettings{
			Path: s.getString(keyDatabasePath, defaults.Database.Path),
		},
		Windows: domain.WindowSettings{
			IncludeInserts: s.getBool(keyIncludeInserts, defaults.Windows.IncludeInserts),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	if err := s.configStore.Set(keyQueryWorkers, settings.Query.Workers); err != nil {
		return fmt.Errorf("save query workers: %w", err)
	}
	if err := s.configStore.Set(keyQueryFormat, settings.Query.Format.String()); err != nil {
		return fmt.Errorf("save query format: %w", err)
	}
	if err := s.configStore.Set(keyDatabasePath, settings.Database.Path); err != nil {
		return fmt.Errorf("save database path: %w", err)
	}
	if err := s.configStore.Set(keyIncludeInserts, settings.Windows.IncludeInserts); err != nil {
		return fmt.Errorf("save include inserts: %w", err)
	}

	return nil
}

// SetWorkers updates the number of concurrent query workers.
func (s *SettingsService) SetWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("invalid worker count %d: %w", workers, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Query.Workers = workers
	return s.Save(settings)
}

// SetOutputFormat updates the default result format.
func (s *SettingsService) SetOutputFormat(format domain.OutputFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("invalid output format %q: %w", format, domain.ErrUnsupportedFormat)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Query.Format = format
	return s.Save(settings)
}

// SetDatabasePath updates the default database directory.
func (s *SettingsService) SetDatabasePath(path string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Database.Path = path
	return s.Save(settings)
}

// SetIncludeInserts updates whether windows carry lower-case inserts.
func (s *SettingsService) SetIncludeInserts(include bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Windows.IncludeInserts = include
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	val := s.configStore.GetString(keyQueryFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.OutputFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
