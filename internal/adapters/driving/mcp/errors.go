// Package mcp provides an MCP (Model Context Protocol) server adapter for otuscan.
// It lets AI assistants query a sequence database for the nearest OTUs.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrMissingDatabaseService is returned when the database service is not provided.
var ErrMissingDatabaseService = errors.New("mcp: database service is required")
