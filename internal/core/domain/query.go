package domain

// UnnamedQueryID is the identifier given to a literal query sequence.
const UnnamedQueryID = "unnamed_sequence"

// QueryInputKind identifies how query sequences were supplied.
type QueryInputKind string

// Query input kinds.
const (
	// QueryInputLiteral is one or more sequences given directly.
	QueryInputLiteral QueryInputKind = "literal"

	// QueryInputFasta is a batch of named sequences.
	QueryInputFasta QueryInputKind = "fasta"

	// QueryInputOtuTable is an OTU table whose windows are queried.
	QueryInputOtuTable QueryInputKind = "otu_table"
)

// IsValid returns true if the kind is recognised.
func (k QueryInputKind) IsValid() bool {
	switch k {
	case QueryInputLiteral, QueryInputFasta, QueryInputOtuTable:
		return true
	default:
		return false
	}
}

// EchoesSequence reports whether result tables for this kind carry a
// query_sequence column. FASTA queries are identified by name alone.
func (k QueryInputKind) EchoesSequence() bool {
	return k != QueryInputFasta
}

// QueryRecord is a single query window.
type QueryRecord struct {
	// ID is reported in the query_name column.
	ID string

	// Sequence is the window compared against the database.
	Sequence string

	// Marker and Sample are set when the query came from an OTU table.
	// They never influence matching.
	Marker string
	Sample string
}

// LiteralQuery creates a query for a sequence given on its own.
func LiteralQuery(sequence string) QueryRecord {
	return QueryRecord{ID: UnnamedQueryID, Sequence: sequence}
}

// NamedQuery creates a query from a named sequence, e.g. a FASTA record.
func NamedQuery(name, sequence string) QueryRecord {
	return QueryRecord{ID: name, Sequence: sequence}
}

// OtuQuery creates a query from an OTU table row. The id joins sample
// and marker with a semicolon.
func OtuQuery(e OtuEntry) QueryRecord {
	return QueryRecord{
		ID:       e.Sample + ";" + e.Marker,
		Sequence: e.Sequence,
		Marker:   e.Marker,
		Sample:   e.Sample,
	}
}

// Match pairs a database entry with its divergence from a query.
type Match struct {
	Entry      OtuEntry
	Divergence int
}

// QueryResult is one output row: a query joined with one of its
// minimum-divergence matches.
type QueryResult struct {
	QueryID       string
	QuerySequence string
	Divergence    int
	NumHits       int
	Sample        string
	Marker        string
	HitSequence   string
	Taxonomy      string
}

// NewQueryResult joins a query with a match.
func NewQueryResult(q QueryRecord, m Match) QueryResult {
	return QueryResult{
		QueryID:       q.ID,
		QuerySequence: q.Sequence,
		Divergence:    m.Divergence,
		NumHits:       m.Entry.NumHits,
		Sample:        m.Entry.Sample,
		Marker:        m.Entry.Marker,
		HitSequence:   m.Entry.Sequence,
		Taxonomy:      m.Entry.Taxonomy,
	}
}

// QueryOptions configures a batch query.
type QueryOptions struct {
	// Workers is the number of queries evaluated concurrently.
	// Zero or less selects the number of CPUs.
	Workers int

	// Shards splits each query's scan into this many concurrent
	// partitions. Zero or one scans serially.
	Shards int
}
