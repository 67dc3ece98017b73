package domain

import (
	"sort"
	"time"
)

// OtuEntry is one row of an OTU table: a window observed in a sample,
// with its abundance and recorded lineage. Entries are immutable once
// created.
type OtuEntry struct {
	// Marker identifies the marker gene whose window this is.
	Marker string

	// Sample identifies where the window was observed.
	Sample string

	// Sequence is the nucleotide window.
	Sequence string

	// NumHits is the number of reads contributing to this OTU.
	NumHits int

	// Coverage is the estimated read coverage of the window.
	Coverage float64

	// Taxonomy is the ordered lineage, e.g. "Root; k__Bacteria; p__Firmicutes".
	Taxonomy string
}

// SequenceDatabase is an immutable collection of OTU entries.
// It is built once and then queried read-only; rebuilding produces a
// new value. Entries of differing markers and lengths may coexist.
type SequenceDatabase struct {
	entries []OtuEntry
}

// NewSequenceDatabase builds a database from entries.
// The input slice is copied, so later changes to it are not observed.
func NewSequenceDatabase(entries []OtuEntry) *SequenceDatabase {
	cp := make([]OtuEntry, len(entries))
	copy(cp, entries)
	return &SequenceDatabase{entries: cp}
}

// Len returns the number of entries. A nil database is empty.
func (d *SequenceDatabase) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entry returns the entry at index i in storage order.
func (d *SequenceDatabase) Entry(i int) OtuEntry {
	return d.entries[i]
}

// Entries returns a copy of all entries in storage order.
func (d *SequenceDatabase) Entries() []OtuEntry {
	if d == nil {
		return nil
	}
	cp := make([]OtuEntry, len(d.entries))
	copy(cp, d.entries)
	return cp
}

// Markers returns the distinct marker ids, sorted.
func (d *SequenceDatabase) Markers() []string {
	return d.distinct(func(e *OtuEntry) string { return e.Marker })
}

// Samples returns the distinct sample ids, sorted.
func (d *SequenceDatabase) Samples() []string {
	return d.distinct(func(e *OtuEntry) string { return e.Sample })
}

func (d *SequenceDatabase) distinct(key func(*OtuEntry) string) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := range d.entries {
		k := key(&d.entries[i])
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// DatabaseInfo describes a persisted database build.
type DatabaseInfo struct {
	// BuildID uniquely identifies the build.
	BuildID string

	// BuiltAt is when the build completed.
	BuiltAt time.Time

	// Entries is the number of stored entries.
	Entries int

	// Markers is the number of distinct markers.
	Markers int

	// Samples is the number of distinct samples.
	Samples int

	// Location is where the database lives (directory or file path).
	Location string
}
