package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/adapters/driven/fasta"
	"github.com/custodia-labs/otuscan/internal/adapters/driven/otutable"
	"github.com/custodia-labs/otuscan/internal/core/domain"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Extract marker windows from aligned reads",
	Long: `Transcribe a fixed window of alignment columns from each read.

--reads is a nucleotide FASTA of reads trimmed to start at the codon
aligned to column 0. --alignment is a FASTA of the same reads' protein
translations aligned to the marker profile, matched to reads by name.
--columns lists the window's alignment columns, e.g. "20-39" or "0-9,12".

Window codons are written upper case and window gaps as "---". With
--include-inserts, codons of columns outside the window are kept as
lower case. Reads that cannot be transcribed are reported and skipped.

By default windows are written as FASTA. With --otu-table identical
windows are grouped into OTU table rows with read counts and coverage.`,
	Example: `  otuscan windows --reads reads.fa --alignment aligned.fa --columns 20-39
  otuscan windows --reads reads.fa --alignment aligned.fa --columns 20-39 \
      --marker rpsB --otu-table --known-otu-table reference.tsv`,
	RunE: runWindows,
}

func init() {
	windowsCmd.Flags().String("reads", "", "nucleotide FASTA of reads (required)")
	windowsCmd.Flags().String("alignment", "", "FASTA of aligned protein translations (required)")
	windowsCmd.Flags().String("columns", "", "window alignment columns, e.g. 20-39 (required)")
	windowsCmd.Flags().String("marker", "", "marker gene id for OTU table rows")
	windowsCmd.Flags().String("sample", "", "sample id for OTU table rows (default: reads file name)")
	windowsCmd.Flags().Bool("include-inserts", false, "keep lower-case codons of non-window columns (default from settings)")
	windowsCmd.Flags().Bool("otu-table", false, "write an OTU table instead of FASTA")
	windowsCmd.Flags().String("known-otu-table", "", "OTU table supplying taxonomy for known windows")
	_ = windowsCmd.MarkFlagRequired("reads")
	_ = windowsCmd.MarkFlagRequired("alignment")
	_ = windowsCmd.MarkFlagRequired("columns")
	rootCmd.AddCommand(windowsCmd)
}

func runWindows(cmd *cobra.Command, _ []string) error {
	if windowService == nil {
		return fmt.Errorf("window service not configured")
	}

	flags := cmd.Flags()
	var readsPath, alignPath, columns, marker, sample, knownPath string
	for name, dst := range map[string]*string{
		"reads":           &readsPath,
		"alignment":       &alignPath,
		"columns":         &columns,
		"marker":          &marker,
		"sample":          &sample,
		"known-otu-table": &knownPath,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return fmt.Errorf("getting %s flag: %w", name, err)
		}
		*dst = v
	}
	asTable, err := flags.GetBool("otu-table")
	if err != nil {
		return fmt.Errorf("getting otu-table flag: %w", err)
	}

	window, err := domain.ParseWindowSpec(columns)
	if err != nil {
		return err
	}
	if asTable && marker == "" {
		return fmt.Errorf("%w: --marker is required with --otu-table", domain.ErrInvalidInput)
	}
	if sample == "" {
		sample = sampleName(readsPath)
	}

	opts := domain.ExtractOptions{IncludeInserts: currentSettings().Windows.IncludeInserts}
	if flags.Changed("include-inserts") {
		if opts.IncludeInserts, err = flags.GetBool("include-inserts"); err != nil {
			return fmt.Errorf("getting include-inserts flag: %w", err)
		}
	}

	reads, err := fasta.ReadReads(readsPath)
	if err != nil {
		return err
	}
	alignments, err := fasta.ReadAlignments(alignPath)
	if err != nil {
		return err
	}

	windows, failures, err := windowService.Extract(cmd.Context(), reads, alignments, window, opts)
	if err != nil {
		return err
	}
	for _, f := range failures {
		cmd.PrintErrf("Skipped read %v\n", f)
	}

	if !asTable {
		return fasta.WriteWindows(cmd.OutOrStdout(), windows)
	}

	var known []domain.OtuEntry
	if knownPath != "" {
		table, err := otutable.ReadFile(knownPath)
		if err != nil {
			return err
		}
		reportRowErrors(cmd, knownPath, table.Errors)
		known = table.Entries
	}

	entries := windowService.Accumulate(windows, window, domain.AccumulateOptions{
		Marker: marker,
		Sample: sample,
		Known:  known,
	})
	return otutable.Write(cmd.OutOrStdout(), entries)
}

// sampleName derives a sample id from a reads file, dropping directories
// and extensions: "data/S1.fa.gz" becomes "S1".
func sampleName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
