package otutable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// Header is the column layout of an OTU table.
var Header = []string{"gene", "sample", "sequence", "num_hits", "coverage", "taxonomy"}

// RowError describes a row that could not be parsed. Reading continues
// past it.
type RowError struct {
	Line int
	Err  error
}

// Error implements error.
func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e RowError) Unwrap() error {
	return e.Err
}

// Table is the result of reading an OTU table.
type Table struct {
	Entries []domain.OtuEntry
	Errors  []RowError
}

// maxLineBytes bounds a single table row.
const maxLineBytes = 16 << 20

// splitRow splits a tab separated line. Fields are taken verbatim; quote
// characters carry no meaning.
func splitRow(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), "\t")
}

// Read parses an OTU table. A missing or wrong header is an error;
// malformed rows are collected in Table.Errors. Blank lines are skipped.
func Read(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			if strings.TrimSpace(sc.Text()) == "" {
				continue
			}
			return splitRow(sc.Text()), true
		}
		return nil, false
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty table, header required", domain.ErrMalformedRow)
	}
	if !sameColumns(header, Header) {
		return nil, fmt.Errorf("%w: header %q, expected %q",
			domain.ErrMalformedRow, strings.Join(header, "\t"), strings.Join(Header, "\t"))
	}

	table := &Table{}
	for {
		record, ok := next()
		if !ok {
			break
		}
		entry, err := parseEntry(record)
		if err != nil {
			table.Errors = append(table.Errors, RowError{Line: line, Err: err})
			continue
		}
		table.Entries = append(table.Entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading row %d: %w", line+1, err)
	}

	return table, nil
}

// ReadFile parses the OTU table at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func parseEntry(record []string) (domain.OtuEntry, error) {
	if len(record) != len(Header) {
		return domain.OtuEntry{}, fmt.Errorf("%w: %d columns, expected %d",
			domain.ErrMalformedRow, len(record), len(Header))
	}

	hits, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil || hits < 0 {
		return domain.OtuEntry{}, fmt.Errorf("%w: num_hits %q", domain.ErrMalformedRow, record[3])
	}
	coverage, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return domain.OtuEntry{}, fmt.Errorf("%w: coverage %q", domain.ErrMalformedRow, record[4])
	}

	return domain.OtuEntry{
		Marker:   record[0],
		Sample:   record[1],
		Sequence: record[2],
		NumHits:  hits,
		Coverage: coverage,
		Taxonomy: record[5],
	}, nil
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}
