// Package fasta reads the FASTA inputs otuscan consumes: query batches,
// raw reads and aligned protein translations.
package fasta

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// Record is one named FASTA sequence.
type Record struct {
	// Name is the first whitespace separated token of the header.
	Name string

	// Description is the rest of the header, if any.
	Description string

	Sequence string
}

// Read parses every record in r. The alphabet selects the template
// sequence type; letters are kept as written.
func Read(r io.Reader, alpha alphabet.Alphabet) ([]Record, error) {
	in := fasta.NewReader(r, linear.NewSeq("", nil, alpha))

	var records []Record
	for {
		s, err := in.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("reading fasta: %w", err)
		}

		ls, ok := s.(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected sequence type %T", domain.ErrInvalidInput, s)
		}
		records = append(records, Record{
			Name:        ls.Name(),
			Description: ls.Description(),
			Sequence:    string(alphabet.LettersToBytes(ls.Seq)),
		})
	}
}

func readFile(path string, alpha alphabet.Alphabet) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f, alpha)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadQueries reads a query batch. Each record becomes a query named by
// its first header token.
func ReadQueries(path string) ([]domain.QueryRecord, error) {
	records, err := readFile(path, alphabet.DNAgapped)
	if err != nil {
		return nil, err
	}

	queries := make([]domain.QueryRecord, len(records))
	for i, r := range records {
		queries[i] = domain.NamedQuery(r.Name, r.Sequence)
	}
	return queries, nil
}

// ReadReads reads nucleotide reads.
func ReadReads(path string) ([]domain.NucleotideRead, error) {
	records, err := readFile(path, alphabet.DNA)
	if err != nil {
		return nil, err
	}

	reads := make([]domain.NucleotideRead, len(records))
	for i, r := range records {
		reads[i] = domain.NucleotideRead{Name: r.Name, Sequence: r.Sequence}
	}
	return reads, nil
}

// ReadAlignments reads aligned protein sequences. Both '-' and '.' are
// accepted as gaps.
func ReadAlignments(path string) ([]domain.AlignedProteinSequence, error) {
	records, err := readFile(path, alphabet.Protein)
	if err != nil {
		return nil, err
	}

	aligned := make([]domain.AlignedProteinSequence, len(records))
	for i, r := range records {
		aligned[i] = domain.AlignedProteinSequence{Name: r.Name, Sequence: r.Sequence}
	}
	return aligned, nil
}

// lineWidth is the number of bases per line written by WriteWindows.
const lineWidth = 60

// WriteWindows writes transcribed windows as FASTA, one record per read.
func WriteWindows(w io.Writer, windows []domain.ReadWindow) error {
	out := fasta.NewWriter(w, lineWidth)
	for _, rw := range windows {
		s := linear.NewSeq(rw.ReadName, alphabet.BytesToLetters([]byte(rw.Window.Sequence)), alphabet.DNAgapped)
		if _, err := out.Write(s); err != nil {
			return fmt.Errorf("writing window %s: %w", rw.ReadName, err)
		}
	}
	return nil
}
