package mcp

import (
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Query evaluates divergence queries.
	Query driving.QueryService

	// Database loads the sequence database queried against.
	Database driving.DatabaseService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Database == nil {
		return ErrMissingDatabaseService
	}
	return nil
}
