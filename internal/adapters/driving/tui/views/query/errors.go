package query

import "errors"

// Error definitions for the query view.
var (
	// ErrNoQueryService indicates that no query service was provided.
	ErrNoQueryService = errors.New("query service is required")

	// ErrNoDatabase indicates a query was submitted before a database loaded.
	ErrNoDatabase = errors.New("no database loaded")
)
