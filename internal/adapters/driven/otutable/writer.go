package otutable

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// ResultHeader returns the result table columns for queries of kind.
func ResultHeader(kind domain.QueryInputKind) []string {
	if kind.EchoesSequence() {
		return []string{"query_name", "query_sequence", "divergence", "num_hits",
			"sample", "marker", "hit_sequence", "taxonomy"}
	}
	return []string{"query_name", "divergence", "num_hits",
		"sample", "marker", "hit_sequence", "taxonomy"}
}

// writeRow writes fields joined by tabs. Fields are written verbatim,
// without quoting.
func writeRow(w *bufio.Writer, fields ...string) error {
	if _, err := w.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// CoverageExact writes coverage with as many digits as it needs to be
// read back unchanged.
const CoverageExact = -1

// Write emits entries as an OTU table. Coverage is written with two
// decimals.
func Write(w io.Writer, entries []domain.OtuEntry) error {
	return WriteCoverage(w, entries, 2)
}

// WriteCoverage emits entries as an OTU table with coverage rounded to
// decimals places, or in full with CoverageExact.
func WriteCoverage(w io.Writer, entries []domain.OtuEntry, decimals int) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, Header...); err != nil {
		return err
	}
	for _, e := range entries {
		err := writeRow(bw,
			e.Marker,
			e.Sample,
			e.Sequence,
			strconv.Itoa(e.NumHits),
			strconv.FormatFloat(e.Coverage, 'f', decimals, 64),
			e.Taxonomy,
		)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteResults emits query results as a result table.
func WriteResults(w io.Writer, results []domain.QueryResult, kind domain.QueryInputKind) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, ResultHeader(kind)...); err != nil {
		return err
	}
	echo := kind.EchoesSequence()
	for _, r := range results {
		row := make([]string, 0, 8)
		row = append(row, r.QueryID)
		if echo {
			row = append(row, r.QuerySequence)
		}
		row = append(row,
			strconv.Itoa(r.Divergence),
			strconv.Itoa(r.NumHits),
			r.Sample,
			r.Marker,
			r.HitSequence,
			r.Taxonomy,
		)
		if err := writeRow(bw, row...); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ResultRow is the JSON form of a query result.
type ResultRow struct {
	QueryName     string  `json:"query_name"`
	QuerySequence *string `json:"query_sequence,omitempty"`
	Divergence    int     `json:"divergence"`
	NumHits       int     `json:"num_hits"`
	Sample        string  `json:"sample"`
	Marker        string  `json:"marker"`
	HitSequence   string  `json:"hit_sequence"`
	Taxonomy      string  `json:"taxonomy"`
}

// ResultRows converts results to their JSON form.
func ResultRows(results []domain.QueryResult, kind domain.QueryInputKind) []ResultRow {
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		rows[i] = ResultRow{
			QueryName:   r.QueryID,
			Divergence:  r.Divergence,
			NumHits:     r.NumHits,
			Sample:      r.Sample,
			Marker:      r.Marker,
			HitSequence: r.HitSequence,
			Taxonomy:    r.Taxonomy,
		}
		if kind.EchoesSequence() {
			seq := r.QuerySequence
			rows[i].QuerySequence = &seq
		}
	}
	return rows
}

// WriteResultsJSON emits query results as an indented JSON array.
func WriteResultsJSON(w io.Writer, results []domain.QueryResult, kind domain.QueryInputKind) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ResultRows(results, kind))
}
