package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/tui"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for otuscan.

The TUI queries window sequences against a database, shows the closest
entries with their lineage, and highlights where each hit differs from
the query.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Query / Select
  a        - Toggle alignment
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("db", "", "database directory or OTU table (default from settings)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	if !isTerminal() {
		return ErrNotTerminal
	}

	ports, closeFn, err := tuiPorts(cmd)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck // best-effort close on exit

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiPorts opens the database named by --db and gathers the TUI's services.
func tuiPorts(cmd *cobra.Command) (*tui.Ports, func() error, error) {
	dbFlag, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, nil, fmt.Errorf("getting db flag: %w", err)
	}

	database, closeFn, err := openDatabase(cmd.Context(), resolveDatabasePath(dbFlag), OpenExisting)
	if err != nil {
		return nil, nil, err
	}

	ports := tui.NewPorts(queryService, database)
	ports.Settings = settingsService
	if err := ports.Validate(); err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return ports, closeFn, nil
}
