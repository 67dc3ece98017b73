package driving

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// WindowService extracts OTU windows from aligned reads.
type WindowService interface {
	// Transcribe maps the window columns of an aligned protein onto the read.
	Transcribe(
		aligned domain.AlignedProteinSequence,
		read string,
		window domain.WindowSpec,
		includeInserts bool,
	) (domain.NucleotideWindow, error)

	// Extract transcribes every read that has an alignment of the same name.
	// Reads that fail are reported individually and do not stop the batch.
	Extract(
		ctx context.Context,
		reads []domain.NucleotideRead,
		alignments []domain.AlignedProteinSequence,
		window domain.WindowSpec,
		opts domain.ExtractOptions,
	) ([]domain.ReadWindow, []domain.ReadFailure, error)

	// Accumulate groups read windows into OTU entries.
	Accumulate(windows []domain.ReadWindow, window domain.WindowSpec, opts domain.AccumulateOptions) []domain.OtuEntry
}
