package services

import (
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// Accumulate groups read windows with identical sequence into OTU entries.
// Entries appear in the order their window was first seen.
//
// Coverage sums, per read, L/(L-w+1) where L is the read length and w the
// window length in bases: the expected number of window-length positions
// covered by the read. Reads shorter than the window count once.
func (s *WindowService) Accumulate(
	windows []domain.ReadWindow,
	window domain.WindowSpec,
	opts domain.AccumulateOptions,
) []domain.OtuEntry {
	known := knownTaxonomy(opts.Known, opts.Marker)
	w := window.NucleotideLength()

	index := make(map[string]int)
	var entries []domain.OtuEntry
	for _, rw := range windows {
		seq := rw.Window.Sequence
		i, ok := index[seq]
		if !ok {
			i = len(entries)
			index[seq] = i
			entries = append(entries, domain.OtuEntry{
				Marker:   opts.Marker,
				Sample:   opts.Sample,
				Sequence: seq,
				Taxonomy: known[seq],
			})
		}
		entries[i].NumHits++
		entries[i].Coverage += readCoverage(rw.ReadLength, w)
	}

	logger.Debug("Accumulated %d windows into %d OTUs for %s/%s",
		len(windows), len(entries), opts.Sample, opts.Marker)
	return entries
}

func readCoverage(readLength, windowLength int) float64 {
	positions := readLength - windowLength + 1
	if positions < 1 {
		return 1
	}
	return float64(readLength) / float64(positions)
}

// knownTaxonomy indexes known entries of marker by window sequence.
// The first lineage recorded for a window wins.
func knownTaxonomy(known []domain.OtuEntry, marker string) map[string]string {
	out := make(map[string]string)
	for _, e := range known {
		if e.Marker != marker || e.Taxonomy == "" {
			continue
		}
		if _, ok := out[e.Sequence]; !ok {
			out[e.Sequence] = e.Taxonomy
		}
	}
	return out
}
