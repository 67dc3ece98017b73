package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for otuscan resources.
	uriScheme = "otuscan://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "database",
		Name:        "database",
		Description: "Build metadata, markers and samples of the sequence database",
		MIMEType:    "application/json",
	}, s.handleDatabaseResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "markers/{marker}/entries",
		Name:        "marker-entries",
		Description: "OTU entries recorded for one marker gene",
		MIMEType:    "application/json",
	}, s.handleMarkerEntriesResource)
}

// databaseInfo is the JSON form of the database resource.
type databaseInfo struct {
	BuildID  string     `json:"build_id,omitempty"`
	BuiltAt  *time.Time `json:"built_at,omitempty"`
	Location string     `json:"location,omitempty"`
	Entries  int        `json:"entries"`
	Markers  []string   `json:"markers"`
	Samples  []string   `json:"samples"`
}

// entryInfo is the JSON form of an OTU entry.
type entryInfo struct {
	Sample   string  `json:"sample"`
	Sequence string  `json:"sequence"`
	NumHits  int     `json:"num_hits"`
	Coverage float64 `json:"coverage"`
	Taxonomy string  `json:"taxonomy"`
}

// handleDatabaseResource describes the loaded database.
func (s *Server) handleDatabaseResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	out := databaseInfo{
		Entries: db.Len(),
		Markers: nonNil(db.Markers()),
		Samples: nonNil(db.Samples()),
	}

	info, err := s.ports.Database.Info(ctx)
	switch {
	case err == nil:
		out.BuildID = info.BuildID
		builtAt := info.BuiltAt
		out.BuiltAt = &builtAt
		out.Location = info.Location
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("reading build info: %w", err)
	}

	return jsonResult(req.Params.URI, out)
}

// handleMarkerEntriesResource lists the entries of one marker.
func (s *Server) handleMarkerEntriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	marker := extractMarker(req.Params.URI)
	if marker == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	var entries []entryInfo
	for _, e := range db.Entries() {
		if e.Marker != marker {
			continue
		}
		entries = append(entries, entryInfo{
			Sample:   e.Sample,
			Sequence: e.Sequence,
			NumHits:  e.NumHits,
			Coverage: e.Coverage,
			Taxonomy: e.Taxonomy,
		})
	}
	if entries == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResult(req.Params.URI, entries)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMarker extracts the marker from a URI like otuscan://markers/{marker}/entries.
func extractMarker(uri string) string {
	const prefix = uriScheme + "markers/"
	const suffix = "/entries"

	if len(uri) <= len(prefix)+len(suffix) ||
		!strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
