package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/core/services"
)

const testTable = "gene\tsample\tsequence\tnum_hits\tcoverage\ttaxonomy\n" +
	"rpsB\ts1\tACGTACGT\t4\t2.50\tRoot; k__Bacteria\n" +
	"rplK\ts2\tTTTTACGT\t2\t1.00\t\n"

// fakeWatcher fires onChange a fixed number of times and then returns.
type fakeWatcher struct {
	mu      sync.Mutex
	fires   int
	watched []string
}

func (w *fakeWatcher) Watch(_ context.Context, path string, onChange func()) error {
	w.mu.Lock()
	w.watched = append(w.watched, path)
	fires := w.fires
	w.mu.Unlock()
	for i := 0; i < fires; i++ {
		onChange()
	}
	return nil
}

// testEnv holds the services installed for a test.
type testEnv struct {
	settings *services.SettingsService
	stores   map[string]*memory.EntryStore
	watcher  *fakeWatcher
	opened   []string
}

// store returns the entry store behind location, creating it on first use.
func (e *testEnv) store(location string) *memory.EntryStore {
	s, ok := e.stores[location]
	if !ok {
		s = memory.NewEntryStore()
		e.stores[location] = s
	}
	return s
}

// setupTestServices installs real services over memory stores and resets
// them when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		settings: services.NewSettingsService(memory.NewConfigStore()),
		stores:   make(map[string]*memory.EntryStore),
		watcher:  &fakeWatcher{},
	}
	Configure(Services{
		Query:    services.NewQueryService(),
		Windows:  services.NewWindowService(),
		Settings: env.settings,
		Database: func(_ context.Context, location string, mode OpenMode) (driving.DatabaseService, func() error, error) {
			env.opened = append(env.opened, location)
			if _, ok := env.stores[location]; !ok && mode == OpenExisting {
				return nil, nil, fmt.Errorf("%w: no database in %s", domain.ErrNotFound, location)
			}
			s := env.store(location)
			return services.NewDatabaseService(s), s.Close, nil
		},
		Watcher: env.watcher,
	})
	t.Cleanup(func() { Configure(Services{}) })
	return env
}

// resetFlags restores every flag in the command tree to its default so
// values do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns what it
// wrote to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
