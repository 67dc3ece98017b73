package driven

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// EntryStore persists the OTU entries of a sequence database.
// A store holds exactly one build; replacing it swaps the whole collection.
type EntryStore interface {
	// ReplaceAll atomically replaces every stored entry and the build metadata.
	ReplaceAll(ctx context.Context, entries []domain.OtuEntry, info domain.DatabaseInfo) error

	// All returns every stored entry. No ordering is guaranteed across
	// builds, but repeated calls on one build return the same order.
	All(ctx context.Context) ([]domain.OtuEntry, error)

	// Info returns the metadata of the current build.
	// Returns domain.ErrNotFound if nothing has been built.
	Info(ctx context.Context) (*domain.DatabaseInfo, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
