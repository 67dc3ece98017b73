package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWindow indicates a window specification that is not strictly
	// ascending or refers to columns outside the alignment.
	ErrInvalidWindow = errors.New("invalid window specification")

	// ErrReadTooShort indicates the nucleotide read ran out of bases before
	// every non-gap column up to the last window column was satisfied.
	ErrReadTooShort = errors.New("nucleotide read shorter than alignment requires")

	// ErrMalformedRow indicates an OTU table row that could not be parsed.
	// Reported per row; other rows are still processed.
	ErrMalformedRow = errors.New("malformed table row")

	// ErrDatabaseEmpty indicates the database holds no entries.
	// Queries against an empty database return no rows rather than this error;
	// it is only surfaced by commands that require content, such as dump.
	ErrDatabaseEmpty = errors.New("database is empty")

	// ErrUnsupportedFormat indicates an unknown output or input format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoQuery indicates no query input was supplied.
	ErrNoQuery = errors.New("no query input")
)
