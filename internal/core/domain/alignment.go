package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Gap symbols in an aligned protein sequence.
// '.' is what HMMER writes for gaps inside insert-state columns.
const (
	GapSymbol       = '-'
	InsertGapSymbol = '.'
)

// CodonLength is the number of nucleotides encoding one amino acid.
const CodonLength = 3

// AlignedProteinSequence is a read's protein translation as aligned
// against a marker profile. Column index is positional and 0-based.
type AlignedProteinSequence struct {
	// Name identifies the read this alignment belongs to.
	Name string

	// Sequence is the aligned protein string, amino acids plus gap symbols.
	Sequence string
}

// Len returns the number of alignment columns.
func (a AlignedProteinSequence) Len() int {
	return len(a.Sequence)
}

// IsGap reports whether column i holds a gap. Gap columns never
// correspond to a codon in the underlying read.
func (a AlignedProteinSequence) IsGap(i int) bool {
	c := a.Sequence[i]
	return c == GapSymbol || c == InsertGapSymbol
}

// WindowSpec lists the alignment columns that define a cross-sample
// comparable OTU window. Columns not listed are insertions relative to
// the window.
type WindowSpec struct {
	Columns []int
}

// NewWindowSpec creates a window over the given columns.
func NewWindowSpec(columns ...int) WindowSpec {
	return WindowSpec{Columns: columns}
}

// ContiguousWindow creates a window of length columns beginning at start.
func ContiguousWindow(start, length int) WindowSpec {
	cols := make([]int, length)
	for i := range cols {
		cols[i] = start + i
	}
	return WindowSpec{Columns: cols}
}

// Len returns the number of window columns.
func (w WindowSpec) Len() int {
	return len(w.Columns)
}

// NucleotideLength returns the length of a window sequence produced
// without inserts.
func (w WindowSpec) NucleotideLength() int {
	return len(w.Columns) * CodonLength
}

// Last returns the final window column, or -1 for an empty window.
func (w WindowSpec) Last() int {
	if len(w.Columns) == 0 {
		return -1
	}
	return w.Columns[len(w.Columns)-1]
}

// Validate checks the window against an alignment of the given length.
// Columns must be strictly ascending and lie within [0, alignmentLength).
func (w WindowSpec) Validate(alignmentLength int) error {
	prev := -1
	for i, c := range w.Columns {
		if c < 0 || c >= alignmentLength {
			return fmt.Errorf("%w: column %d at position %d outside alignment of length %d",
				ErrInvalidWindow, c, i, alignmentLength)
		}
		if c <= prev {
			return fmt.Errorf("%w: column %d at position %d does not follow %d",
				ErrInvalidWindow, c, i, prev)
		}
		prev = c
	}
	return nil
}

// String renders the window in the form accepted by ParseWindowSpec.
func (w WindowSpec) String() string {
	if len(w.Columns) == 0 {
		return ""
	}

	var parts []string
	start := w.Columns[0]
	prev := start
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, c := range w.Columns[1:] {
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()

	return strings.Join(parts, ",")
}

// ParseWindowSpec parses a comma separated list of columns and inclusive
// ranges, e.g. "0-19,25". The result is not validated against an alignment;
// ordering problems surface from Validate.
func ParseWindowSpec(s string) (WindowSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WindowSpec{}, fmt.Errorf("%w: empty column list", ErrInvalidWindow)
	}

	var cols []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return WindowSpec{}, fmt.Errorf("%w: %q", ErrInvalidWindow, part)
		}
		if !isRange {
			cols = append(cols, start)
			continue
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || end < start {
			return WindowSpec{}, fmt.Errorf("%w: %q", ErrInvalidWindow, part)
		}
		for c := start; c <= end; c++ {
			cols = append(cols, c)
		}
	}

	return WindowSpec{Columns: cols}, nil
}

// NucleotideWindow is the output of transcribing a window from a read.
type NucleotideWindow struct {
	// Sequence is the fixed-frame window. Window codons are upper case,
	// window gaps are "---", and included inserts are lower case.
	Sequence string

	// Consumed is the number of read bases used by every visited column,
	// window or not. Callers resume scanning the read from here.
	Consumed int
}

// NucleotideRead is a raw read, trimmed so that its first base is the
// first base of the codon aligned to column 0.
type NucleotideRead struct {
	Name     string
	Sequence string
}

// ReadWindow is the window transcribed from a single read.
type ReadWindow struct {
	// ReadName identifies the source read.
	ReadName string

	// ReadLength is the length of the source read in bases.
	ReadLength int

	// Window is the transcribed window.
	Window NucleotideWindow
}

// ReadFailure records a read whose window could not be transcribed.
type ReadFailure struct {
	ReadName string
	Err      error
}

// Error implements error.
func (f ReadFailure) Error() string {
	return f.ReadName + ": " + f.Err.Error()
}

// Unwrap returns the underlying error.
func (f ReadFailure) Unwrap() error {
	return f.Err
}

// ExtractOptions configures window extraction over a batch of reads.
type ExtractOptions struct {
	// IncludeInserts emits lower-case codons for non-window columns.
	IncludeInserts bool
}

// AccumulateOptions configures grouping of read windows into OTU entries.
type AccumulateOptions struct {
	// Marker and Sample label every produced entry.
	Marker string
	Sample string

	// Known supplies taxonomy for windows already observed elsewhere.
	// May be nil.
	Known []OtuEntry
}
