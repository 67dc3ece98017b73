package driving

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// QueryService answers nearest-neighbour queries against a sequence database.
type QueryService interface {
	// Nearest returns every entry at the minimum divergence from sequence,
	// in database order. An empty database yields no matches.
	Nearest(sequence string, db *domain.SequenceDatabase) []domain.Match

	// Query evaluates a batch of records and returns one group of rows per
	// record, groups in input order.
	Query(
		ctx context.Context,
		records []domain.QueryRecord,
		db *domain.SequenceDatabase,
		opts domain.QueryOptions,
	) ([]domain.QueryResult, error)
}
