package services

import (
	"context"
	"runtime"
	"sync"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService evaluates divergence queries against a sequence database.
// It holds no database of its own; every call is given the snapshot to
// search.
type QueryService struct{}

// NewQueryService creates a new query service.
func NewQueryService() *QueryService {
	return &QueryService{}
}

// Nearest returns every entry at the minimum divergence from sequence.
func (s *QueryService) Nearest(sequence string, db *domain.SequenceDatabase) []domain.Match {
	return Nearest(sequence, db)
}

// Query evaluates records concurrently and returns their result rows.
// Rows are grouped per record in input order; within a group, tied
// matches keep database order. The output does not depend on the number
// of workers or shards.
func (s *QueryService) Query(
	ctx context.Context,
	records []domain.QueryRecord,
	db *domain.SequenceDatabase,
	opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	logger.Section("Query Execution")
	defer logger.Timed("query batch")()
	logger.Debug("Queries: %d, database entries: %d", len(records), db.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []domain.QueryResult{}, nil
	}
	if db.Len() == 0 {
		logger.Info("Database is empty, no results")
		return []domain.QueryResult{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) {
		workers = len(records)
	}
	logger.Debug("Workers: %d, shards per query: %d", workers, opts.Shards)

	groups := make([][]domain.QueryResult, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				groups[i] = s.evaluate(records[i], db, opts.Shards)
			}
		}()
	}

	var err error
feed:
	for i := range records {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		logger.Warn("Query batch abandoned: %v", err)
		return nil, err
	}

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	results := make([]domain.QueryResult, 0, total)
	for _, g := range groups {
		results = append(results, g...)
	}

	logger.Info("Results: %d rows for %d queries", len(results), len(records))
	return results, nil
}

func (s *QueryService) evaluate(q domain.QueryRecord, db *domain.SequenceDatabase, shards int) []domain.QueryResult {
	matches := NearestSharded(q.Sequence, db, shards)
	rows := make([]domain.QueryResult, len(matches))
	for i, m := range matches {
		rows[i] = domain.NewQueryResult(q, m)
	}
	return rows
}
