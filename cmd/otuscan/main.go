// Command otuscan builds marker gene OTU databases and answers divergence
// queries against them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/config/file"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/otutable"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/watch"
	"github.com/custodia-labs/otuscan/internal/adapters/driving/cli"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/core/services"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Query:    services.NewQueryService(),
		Windows:  services.NewWindowService(),
		Settings: services.NewSettingsService(configStore),
		Database: openDatabase,
		Watcher:  watch.New(watch.DefaultDebounce),
	})

	return cli.Execute(ctx)
}

// openDatabase opens the database at location. A regular file is read as
// an OTU table into memory; anything else is a SQLite database directory,
// created only when mode allows it.
func openDatabase(ctx context.Context, location string, mode cli.OpenMode) (driving.DatabaseService, func() error, error) {
	if info, err := os.Stat(location); err == nil && info.Mode().IsRegular() {
		store, err := loadTable(ctx, location)
		if err != nil {
			return nil, nil, err
		}
		return services.NewDatabaseService(store), store.Close, nil
	}

	openStore := sqlite.OpenStore
	if mode == cli.OpenOrCreate {
		openStore = sqlite.NewStore
	}
	store, err := openStore(location)
	if err != nil {
		return nil, nil, err
	}
	return services.NewDatabaseService(store), store.Close, nil
}

// loadTable reads the OTU table at path into a memory store.
func loadTable(ctx context.Context, path string) (*memory.EntryStore, error) {
	table, err := otutable.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, re := range table.Errors {
		logger.Warn("%s:%d: %v", path, re.Line, re.Err)
	}

	db := domain.NewSequenceDatabase(table.Entries)
	store := memory.NewEntryStore()
	err = store.ReplaceAll(ctx, table.Entries, domain.DatabaseInfo{
		BuiltAt:  time.Now().UTC(),
		Entries:  db.Len(),
		Markers:  len(db.Markers()),
		Samples:  len(db.Samples()),
		Location: path,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
