package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// Ensure WindowService implements the interface.
var _ driving.WindowService = (*WindowService)(nil)

// columnKind classifies one alignment column for transcription.
type columnKind int

const (
	// windowCodon: in the window, backed by a codon. Emit it upper case.
	windowCodon columnKind = iota
	// windowGap: in the window, no codon. Emit "---" to hold the frame.
	windowGap
	// insertCodon: outside the window, backed by a codon. Consume it,
	// emit lower case only when inserts are requested.
	insertCodon
	// insertGap: outside the window, no codon. Nothing to do.
	insertGap
)

func classifyColumn(isGap, inWindow bool) columnKind {
	switch {
	case inWindow && !isGap:
		return windowCodon
	case inWindow && isGap:
		return windowGap
	case !isGap:
		return insertCodon
	default:
		return insertGap
	}
}

var frameGap = strings.Repeat(string(domain.GapSymbol), domain.CodonLength)

// WindowService extracts fixed-frame nucleotide windows from aligned reads.
type WindowService struct{}

// NewWindowService creates a new window service.
func NewWindowService() *WindowService {
	return &WindowService{}
}

// Transcribe maps the window columns of an aligned protein onto the
// codons of read. Columns are visited in order up to and including the
// last window column; every non-gap column consumes one codon whether or
// not it is emitted.
func (s *WindowService) Transcribe(
	aligned domain.AlignedProteinSequence,
	read string,
	window domain.WindowSpec,
	includeInserts bool,
) (domain.NucleotideWindow, error) {
	if err := window.Validate(aligned.Len()); err != nil {
		return domain.NucleotideWindow{}, err
	}

	last := window.Last()
	if last < 0 {
		return domain.NucleotideWindow{}, nil
	}

	var out strings.Builder
	out.Grow(window.NucleotideLength())

	cursor := 0
	next := 0 // index into window.Columns of the next window column
	for col := 0; col <= last; col++ {
		inWindow := window.Columns[next] == col
		if inWindow {
			next++
		}

		kind := classifyColumn(aligned.IsGap(col), inWindow)
		if kind == windowGap {
			out.WriteString(frameGap)
			continue
		}
		if kind == insertGap {
			continue
		}

		end := cursor + domain.CodonLength
		if end > len(read) {
			return domain.NucleotideWindow{}, fmt.Errorf(
				"%w: column %d needs bases %d-%d but read %q has %d",
				domain.ErrReadTooShort, col, cursor, end-1, aligned.Name, len(read))
		}
		codon := read[cursor:end]
		cursor = end

		switch kind {
		case windowCodon:
			out.WriteString(strings.ToUpper(codon))
		case insertCodon:
			if includeInserts {
				out.WriteString(strings.ToLower(codon))
			}
		}
	}

	return domain.NucleotideWindow{Sequence: out.String(), Consumed: cursor}, nil
}

// Extract transcribes each read that has an alignment of the same name.
// Reads with no alignment are skipped; reads that cannot be transcribed
// are returned as failures.
func (s *WindowService) Extract(
	ctx context.Context,
	reads []domain.NucleotideRead,
	alignments []domain.AlignedProteinSequence,
	window domain.WindowSpec,
	opts domain.ExtractOptions,
) ([]domain.ReadWindow, []domain.ReadFailure, error) {
	logger.Section("Window Extraction")
	defer logger.Timed("window extraction")()
	logger.Debug("Reads: %d, alignments: %d, window: %s", len(reads), len(alignments), window)

	byName := make(map[string]domain.AlignedProteinSequence, len(alignments))
	for _, a := range alignments {
		byName[a.Name] = a
	}

	var windows []domain.ReadWindow
	var failures []domain.ReadFailure
	for _, r := range reads {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		aligned, ok := byName[r.Name]
		if !ok {
			logger.Debug("No alignment for read %s, skipping", r.Name)
			continue
		}

		w, err := s.Transcribe(aligned, r.Sequence, window, opts.IncludeInserts)
		if err != nil {
			logger.Warn("Read %s: %v", r.Name, err)
			failures = append(failures, domain.ReadFailure{ReadName: r.Name, Err: err})
			continue
		}
		windows = append(windows, domain.ReadWindow{
			ReadName:   r.Name,
			ReadLength: len(r.Sequence),
			Window:     w,
		})
	}

	logger.Info("Extracted %d windows (%d failures)", len(windows), len(failures))
	return windows, failures, nil
}
