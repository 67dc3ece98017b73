package mcp

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.QueryResult
	err     error

	gotRecords []domain.QueryRecord
}

func (m *mockQueryService) Nearest(_ string, _ *domain.SequenceDatabase) []domain.Match {
	return nil
}

func (m *mockQueryService) Query(
	_ context.Context,
	records []domain.QueryRecord,
	_ *domain.SequenceDatabase,
	_ domain.QueryOptions,
) ([]domain.QueryResult, error) {
	m.gotRecords = records
	return m.results, m.err
}

// mockDatabaseService is a mock implementation of driving.DatabaseService.
type mockDatabaseService struct {
	entries []domain.OtuEntry
	info    *domain.DatabaseInfo
	openErr error
	infoErr error

	opens int
}

func (m *mockDatabaseService) Build(_ context.Context, _ []domain.OtuEntry) (*domain.DatabaseInfo, error) {
	return m.info, nil
}

func (m *mockDatabaseService) Open(_ context.Context) (*domain.SequenceDatabase, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	return domain.NewSequenceDatabase(m.entries), nil
}

func (m *mockDatabaseService) Info(_ context.Context) (*domain.DatabaseInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return m.info, nil
}

func testEntries() []domain.OtuEntry {
	return []domain.OtuEntry{
		{Marker: "ribosomal_protein_L11_rplK_gpkg", Sample: "minimal", Sequence: "GGTAAA", NumHits: 7, Coverage: 4.95, Taxonomy: "Root; k__Bacteria"},
		{Marker: "ribosomal_protein_S2_rpsB_gpkg", Sample: "minimal", Sequence: "CGTCGT", NumHits: 6, Coverage: 4.95, Taxonomy: "Root; k__Bacteria; p__Firmicutes"},
		{Marker: "ribosomal_protein_S2_rpsB_gpkg", Sample: "maximal", Sequence: "CGTCGA", NumHits: 2, Coverage: 1.5},
	}
}

func newTestServer(query *mockQueryService, db *mockDatabaseService) *Server {
	server, err := NewServer(&Ports{Query: query, Database: db})
	if err != nil {
		panic(err)
	}
	return server
}
