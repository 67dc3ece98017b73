package domain

const unknownDescription = "Unknown"

// OutputFormat selects how query results are rendered.
type OutputFormat string

// Available output formats.
const (
	// OutputFormatTSV writes a tab separated table with a header row.
	OutputFormatTSV OutputFormat = "tsv"

	// OutputFormatJSON writes a JSON array of result rows.
	OutputFormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatTSV, OutputFormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case OutputFormatTSV:
		return "Tab separated table"
	case OutputFormatJSON:
		return "JSON rows"
	default:
		return unknownDescription
	}
}

// QuerySettings configures the divergence query engine.
type QuerySettings struct {
	// Workers is the number of concurrent query workers (0 = all CPUs).
	Workers int

	// Format is the default result output format.
	Format OutputFormat
}

// DatabaseSettings configures where the sequence database lives.
type DatabaseSettings struct {
	// Path is the default database directory. Empty means ~/.otuscan/db.
	Path string
}

// WindowSettings configures window transcription.
type WindowSettings struct {
	// IncludeInserts emits lower-case codons for non-window columns.
	IncludeInserts bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Query    QuerySettings
	Database DatabaseSettings
	Windows  WindowSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Query: QuerySettings{
			Workers: 0,
			Format:  OutputFormatTSV,
		},
	}
}

// Validate checks the settings for consistency.
func (s *AppSettings) Validate() error {
	if s.Query.Workers < 0 {
		return ErrInvalidInput
	}
	if !s.Query.Format.IsValid() {
		return ErrUnsupportedFormat
	}
	return nil
}
