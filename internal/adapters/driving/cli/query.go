package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/fasta"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/otutable"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find the closest database entries for query windows",
	Long: `Compare query windows against a sequence database and report every
entry at the minimum divergence. Divergence counts mismatching positions
over the shared length plus the difference in length, so a single extra
base costs one.

Exactly one query source is used:
  --query-sequence  one or more literal sequences (named unnamed_sequence)
  --query-fasta     a FASTA file, each record named by its first header word
  --query-otu-table an OTU table, each row named sample;gene

--db accepts a database directory or an OTU table file, which is loaded
into memory for this run only.`,
	Example: `  otuscan query --db ./otus.db.d --query-sequence CGTCGTTGGAACCC
  otuscan query --db otus.tsv --query-fasta windows.fa --json`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("db", "", "database directory or OTU table (default from settings)")
	queryCmd.Flags().StringSlice("query-sequence", nil, "literal query sequence (repeatable)")
	queryCmd.Flags().String("query-fasta", "", "FASTA file of query sequences")
	queryCmd.Flags().String("query-otu-table", "", "OTU table whose windows are queried")
	queryCmd.Flags().Bool("json", false, "write results as JSON")
	queryCmd.Flags().Int("workers", -1, "concurrent query workers (default from settings, 0 = all CPUs)")
	queryCmd.Flags().Int("shards", 0, "split each database scan into this many concurrent shards")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return fmt.Errorf("query service not configured")
	}

	records, kind, err := queryRecords(cmd)
	if err != nil {
		return err
	}

	opts, format, err := queryOptions(cmd)
	if err != nil {
		return err
	}

	dbFlag, err := cmd.Flags().GetString("db")
	if err != nil {
		return fmt.Errorf("getting db flag: %w", err)
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
		cmd.PrintErrln("Warning: database is empty, no matches possible")
	}

	results, err := queryService.Query(cmd.Context(), records, db, opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if format == domain.OutputFormatJSON {
		return otutable.WriteResultsJSON(cmd.OutOrStdout(), results, kind)
	}
	return otutable.WriteResults(cmd.OutOrStdout(), results, kind)
}

// queryRecords reads the single query source given on the command line.
func queryRecords(cmd *cobra.Command) ([]domain.QueryRecord, domain.QueryInputKind, error) {
	sequences, err := cmd.Flags().GetStringSlice("query-sequence")
	if err != nil {
		return nil, "", fmt.Errorf("getting query-sequence flag: %w", err)
	}
	fastaPath, err := cmd.Flags().GetString("query-fasta")
	if err != nil {
		return nil, "", fmt.Errorf("getting query-fasta flag: %w", err)
	}
	tablePath, err := cmd.Flags().GetString("query-otu-table")
	if err != nil {
		return nil, "", fmt.Errorf("getting query-otu-table flag: %w", err)
	}

	given := 0
	for _, set := range []bool{len(sequences) > 0, fastaPath != "", tablePath != ""} {
		if set {
			given++
		}
	}
	switch {
	case given == 0:
		return nil, "", fmt.Errorf("%w: use --query-sequence, --query-fasta or --query-otu-table", domain.ErrNoQuery)
	case given > 1:
		return nil, "", fmt.Errorf("%w: only one query source may be given", domain.ErrInvalidInput)
	}

	switch {
	case len(sequences) > 0:
		records := make([]domain.QueryRecord, 0, len(sequences))
		for _, s := range sequences {
			records = append(records, domain.LiteralQuery(strings.TrimSpace(s)))
		}
		return records, domain.QueryInputLiteral, nil

	case fastaPath != "":
		records, err := fasta.ReadQueries(fastaPath)
		if err != nil {
			return nil, "", err
		}
		return records, domain.QueryInputFasta, nil

	default:
		table, err := otutable.ReadFile(tablePath)
		if err != nil {
			return nil, "", err
		}
		reportRowErrors(cmd, tablePath, table.Errors)
		records := make([]domain.QueryRecord, 0, len(table.Entries))
		for _, e := range table.Entries {
			records = append(records, domain.OtuQuery(e))
		}
		return records, domain.QueryInputOtuTable, nil
	}
}

// queryOptions merges flags over the stored settings.
func queryOptions(cmd *cobra.Command) (domain.QueryOptions, domain.OutputFormat, error) {
	settings := currentSettings()
	opts := domain.QueryOptions{Workers: settings.Query.Workers}
	format := settings.Query.Format

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return opts, format, fmt.Errorf("getting workers flag: %w", err)
	}
	if cmd.Flags().Changed("workers") {
		if workers < 0 {
			return opts, format, fmt.Errorf("%w: --workers must not be negative", domain.ErrInvalidInput)
		}
		opts.Workers = workers
	}

	shards, err := cmd.Flags().GetInt("shards")
	if err != nil {
		return opts, format, fmt.Errorf("getting shards flag: %w", err)
	}
	if shards < 0 {
		return opts, format, fmt.Errorf("%w: --shards must not be negative", domain.ErrInvalidInput)
	}
	opts.Shards = shards

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return opts, format, fmt.Errorf("getting json flag: %w", err)
	}
	if asJSON {
		format = domain.OutputFormatJSON
	}
	return opts, format, nil
}
