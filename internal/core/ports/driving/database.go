package driving

import (
	"context"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// DatabaseService builds and opens the persisted sequence database.
type DatabaseService interface {
	// Build replaces the whole persisted collection with entries.
	Build(ctx context.Context, entries []domain.OtuEntry) (*domain.DatabaseInfo, error)

	// Open loads every stored entry into an immutable snapshot.
	Open(ctx context.Context) (*domain.SequenceDatabase, error)

	// Info describes the current build.
	Info(ctx context.Context) (*domain.DatabaseInfo, error)
}
