package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/otutable"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/logger"
)

var makedbCmd = &cobra.Command{
	Use:   "makedb",
	Short: "Build a sequence database from an OTU table",
	Long: `Build a sequence database from an OTU table.

The table is tab separated with the header
  gene  sample  sequence  num_hits  coverage  taxonomy

Every row becomes one database entry. Rows that cannot be parsed are
reported with their line number and skipped. Building replaces whatever
the database held before.

With --watch the command keeps running and rebuilds whenever the table
changes on disk.`,
	Example: `  otuscan makedb --otu-table otus.tsv --db-path ./otus.db.d
  otuscan makedb --otu-table otus.tsv --watch`,
	RunE: runMakeDB,
}

func init() {
	makedbCmd.Flags().String("otu-table", "", "OTU table to build from (required)")
	makedbCmd.Flags().String("db-path", "", "database directory (default from settings)")
	makedbCmd.Flags().Bool("watch", false, "rebuild whenever the table changes")
	_ = makedbCmd.MarkFlagRequired("otu-table")
	rootCmd.AddCommand(makedbCmd)
}

func runMakeDB(cmd *cobra.Command, _ []string) error {
	tablePath, err := cmd.Flags().GetString("otu-table")
	if err != nil {
		return fmt.Errorf("getting otu-table flag: %w", err)
	}
	dbFlag, err := cmd.Flags().GetString("db-path")
	if err != nil {
		return fmt.Errorf("getting db-path flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	dbPath := resolveDatabasePath(dbFlag)
	if dbPath != "" && isFile(dbPath) {
		return fmt.Errorf("%w: database path %s is a file, expected a directory", domain.ErrInvalidInput, dbPath)
	}

	database, closeFn, err := openDatabase(cmd.Context(), dbPath, OpenOrCreate)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck // best-effort close after build

	build := func(ctx context.Context) error {
		table, err := otutable.ReadFile(tablePath)
		if err != nil {
			return err
		}
		reportRowErrors(cmd, tablePath, table.Errors)
		if len(table.Entries) == 0 && len(table.Errors) > 0 {
			return fmt.Errorf("%w: no usable rows in %s", domain.ErrMalformedRow, tablePath)
		}

		info, err := database.Build(ctx, table.Entries)
		if err != nil {
			return fmt.Errorf("building database: %w", err)
		}
		printBuildSummary(cmd, info)
		return nil
	}

	if err := build(cmd.Context()); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	if tableWatcher == nil {
		return errors.New("table watcher not configured")
	}
	cmd.PrintErrf("Watching %s for changes (ctrl+c to stop)\n", tablePath)
	return tableWatcher.Watch(cmd.Context(), tablePath, func() {
		logger.Info("Table %s changed, rebuilding", tablePath)
		if err := build(cmd.Context()); err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
		}
	})
}

// reportRowErrors prints each unparseable row to stderr.
func reportRowErrors(cmd *cobra.Command, path string, rowErrs []otutable.RowError) {
	for _, re := range rowErrs {
		cmd.PrintErrf("%s:%d: %v\n", path, re.Line, re.Err)
	}
	if len(rowErrs) > 0 {
		logger.Warn("Skipped %d malformed rows in %s", len(rowErrs), path)
	}
}

func printBuildSummary(cmd *cobra.Command, info *domain.DatabaseInfo) {
	cmd.Printf("Built database %s\n", info.BuildID)
	cmd.Printf("  Location: %s\n", info.Location)
	cmd.Printf("  Entries:  %s\n", humanize.Comma(int64(info.Entries)))
	cmd.Printf("  Markers:  %s\n", humanize.Comma(int64(info.Markers)))
	cmd.Printf("  Samples:  %s\n", humanize.Comma(int64(info.Samples)))
}

