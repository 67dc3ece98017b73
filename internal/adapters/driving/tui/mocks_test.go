package tui

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	QueryFunc func(
		ctx context.Context, records []domain.QueryRecord, db *domain.SequenceDatabase, opts domain.QueryOptions,
	) ([]domain.QueryResult, error)
}

func (m *MockQueryService) Nearest(_ string, _ *domain.SequenceDatabase) []domain.Match {
	return nil
}

func (m *MockQueryService) Query(
	ctx context.Context, records []domain.QueryRecord, db *domain.SequenceDatabase, opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, records, db, opts)
	}
	return nil, nil
}

// MockDatabaseService implements driving.DatabaseService for testing.
type MockDatabaseService struct {
	Entries []domain.OtuEntry
	OpenErr error
	InfoErr error
}

func (m *MockDatabaseService) Build(_ context.Context, entries []domain.OtuEntry) (*domain.DatabaseInfo, error) {
	m.Entries = entries
	return &domain.DatabaseInfo{Entries: len(entries)}, nil
}

func (m *MockDatabaseService) Open(_ context.Context) (*domain.SequenceDatabase, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return domain.NewSequenceDatabase(m.Entries), nil
}

func (m *MockDatabaseService) Info(_ context.Context) (*domain.DatabaseInfo, error) {
	if m.InfoErr != nil {
		return nil, m.InfoErr
	}
	return &domain.DatabaseInfo{BuildID: "build-1", Entries: len(m.Entries), Location: "test.db"}, nil
}

var (
	_ driving.QueryService    = (*MockQueryService)(nil)
	_ driving.DatabaseService = (*MockDatabaseService)(nil)
)

func testEntries() []domain.OtuEntry {
	return []domain.OtuEntry{
		{Marker: "rpsB", Sample: "s1", Sequence: "ACGTACGT", NumHits: 6, Coverage: 7.5, Taxonomy: "Root; k__Bacteria"},
		{Marker: "rplK", Sample: "s2", Sequence: "TTTTACGT", NumHits: 3, Coverage: 3.1, Taxonomy: "Root; k__Archaea"},
	}
}

func newTestPorts() *Ports {
	return &Ports{
		Query:    &MockQueryService{},
		Database: &MockDatabaseService{Entries: testEntries()},
	}
}
