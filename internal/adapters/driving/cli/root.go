// Package cli provides the otuscan command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// OpenMode says whether opening a database may create it.
type OpenMode int

const (
	// OpenExisting fails with domain.ErrNotFound when nothing has been
	// built at the location. Read-only commands use it.
	OpenExisting OpenMode = iota

	// OpenOrCreate creates an empty database when none exists.
	OpenOrCreate
)

// DatabaseOpener opens the database service for a location, which is
// either a database directory or an OTU table file. The returned function
// releases the underlying store.
type DatabaseOpener func(ctx context.Context, location string, mode OpenMode) (driving.DatabaseService, func() error, error)

// Services holds everything the commands depend on.
type Services struct {
	Query    driving.QueryService
	Windows  driving.WindowService
	Settings driving.SettingsService
	Database DatabaseOpener
	Watcher  driven.TableWatcher
}

var (
	queryService    driving.QueryService
	windowService   driving.WindowService
	settingsService driving.SettingsService
	databaseOpener  DatabaseOpener
	tableWatcher    driven.TableWatcher
)

// Configure installs the services used by all commands.
func Configure(s Services) {
	queryService = s.Query
	windowService = s.Windows
	settingsService = s.Settings
	databaseOpener = s.Database
	tableWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "otuscan",
	Short: "Marker gene OTU databases and divergence queries",
	Long: `otuscan extracts fixed-frame marker gene windows from aligned reads,
builds databases of the resulting OTUs, and finds the database entries
closest to new window sequences.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns stored settings, or defaults when no settings
// service is configured.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	s, err := settingsService.Get()
	if err != nil {
		logger.Warn("Reading settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *s
}

// resolveDatabasePath picks the flag value, then the configured default.
// Empty means the store's own default location.
func resolveDatabasePath(flag string) string {
	if flag != "" {
		return flag
	}
	return currentSettings().Database.Path
}

func openDatabase(ctx context.Context, location string, mode OpenMode) (driving.DatabaseService, func() error, error) {
	if databaseOpener == nil {
		return nil, nil, errors.New("database not configured")
	}
	svc, closeFn, err := databaseOpener(ctx, location, mode)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database %s: %w", location, err)
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return svc, closeFn, nil
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
