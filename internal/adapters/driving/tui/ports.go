// Package tui provides an interactive terminal user interface for otuscan.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers divergence queries.
	Query driving.QueryService

	// Database opens the sequence database being queried.
	Database driving.DatabaseService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(query driving.QueryService, database driving.DatabaseService) *Ports {
	return &Ports{
		Query:    query,
		Database: database,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Database == nil {
		return ErrMissingDatabaseService
	}
	return nil
}
