package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/otutable"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write a database back out as an OTU table",
	Long: `Write every entry of a database to stdout as an OTU table, in the
order the entries were built. The output can be fed back to makedb.

Coverage is written in full so a dumped table rebuilds the same database.
Use --decimals 2 for the rounded form written by windows.`,
	Example: `  otuscan dump --db ./otus.db.d > otus.tsv`,
	RunE:    runDump,
}

func init() {
	dumpCmd.Flags().String("db", "", "database directory or OTU table (default from settings)")
	dumpCmd.Flags().Int("decimals", otutable.CoverageExact, "round coverage to this many decimals (-1 writes it in full)")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, _ []string) error {
	dbFlag, err := cmd.Flags().GetString("db")
	if err != nil {
		return fmt.Errorf("getting db flag: %w", err)
	}
	decimals, err := cmd.Flags().GetInt("decimals")
	if err != nil {
		return fmt.Errorf("getting decimals flag: %w", err)
	}
	if decimals < otutable.CoverageExact {
		return fmt.Errorf("%w: decimals must be -1 or more, got %d", domain.ErrInvalidInput, decimals)
	}

	database, closeFn, err := openDatabase(cmd.Context(), resolveDatabasePath(dbFlag), OpenExisting)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck // read-only use

	db, err := database.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading database: %w", err)
	}
	if db.Len() == 0 {
		return domain.ErrDatabaseEmpty
	}

	if err := otutable.WriteCoverage(cmd.OutOrStdout(), db.Entries(), decimals); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	cmd.PrintErrf("Dumped %s entries (%s markers, %s samples)\n",
		humanize.Comma(int64(db.Len())),
		humanize.Comma(int64(len(db.Markers()))),
		humanize.Comma(int64(len(db.Samples()))))
	return nil
}
