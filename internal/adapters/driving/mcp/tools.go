package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Queries []QuerySequence `json:"queries" jsonschema:"window sequences to match against the database"`
}

// QuerySequence is one sequence to query.
type QuerySequence struct {
	Name     string `json:"name,omitempty" jsonschema:"identifier echoed in results (default unnamed_sequence)"`
	Sequence string `json:"sequence" jsonschema:"nucleotide window sequence"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput is one nearest match for a query.
type QueryResultOutput struct {
	QueryName     string `json:"query_name"`
	QuerySequence string `json:"query_sequence"`
	Divergence    int    `json:"divergence"`
	NumHits       int    `json:"num_hits"`
	Sample        string `json:"sample"`
	Marker        string `json:"marker"`
	HitSequence   string `json:"hit_sequence"`
	Taxonomy      string `json:"taxonomy"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Find the OTU entries closest to each query sequence by divergence",
	}, s.handleQuery)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	if len(input.Queries) == 0 {
		return nil, QueryOutput{}, fmt.Errorf("%w: at least one query sequence", domain.ErrNoQuery)
	}

	records := make([]domain.QueryRecord, len(input.Queries))
	for i, q := range input.Queries {
		if q.Name == "" {
			records[i] = domain.LiteralQuery(q.Sequence)
		} else {
			records[i] = domain.NamedQuery(q.Name, q.Sequence)
		}
	}

	db, err := s.database(ctx)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	results, err := s.ports.Query.Query(ctx, records, db, domain.QueryOptions{})
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = QueryResultOutput{
			QueryName:     r.QueryID,
			QuerySequence: r.QuerySequence,
			Divergence:    r.Divergence,
			NumHits:       r.NumHits,
			Sample:        r.Sample,
			Marker:        r.Marker,
			HitSequence:   r.HitSequence,
			Taxonomy:      r.Taxonomy,
		}
	}

	return nil, output, nil
}
