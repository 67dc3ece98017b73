package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
	"github.com/custodia-labs/otuscan/internal/core/ports/driving"
	"github.com/custodia-labs/otuscan/internal/logger"
)

// Ensure DatabaseService implements the interface.
var _ driving.DatabaseService = (*DatabaseService)(nil)

// DatabaseService builds and loads sequence databases through an EntryStore.
type DatabaseService struct {
	store driven.EntryStore
	now   func() time.Time
}

// NewDatabaseService creates a database service backed by store.
func NewDatabaseService(store driven.EntryStore) *DatabaseService {
	return &DatabaseService{
		store: store,
		now:   time.Now,
	}
}

// Build replaces the stored collection with entries. No validation is
// applied: entries of differing markers and window lengths coexist.
func (s *DatabaseService) Build(ctx context.Context, entries []domain.OtuEntry) (*domain.DatabaseInfo, error) {
	if s.store == nil {
		return nil, errors.New("entry store unavailable")
	}

	logger.Section("Database Build")
	defer logger.Timed("database build")()

	db := domain.NewSequenceDatabase(entries)
	info := domain.DatabaseInfo{
		BuiltAt: s.now().UTC(),
		Entries: db.Len(),
		Markers: len(db.Markers()),
		Samples: len(db.Samples()),
	}
	logger.Debug("Entries: %d, markers: %d, samples: %d", info.Entries, info.Markers, info.Samples)

	if err := s.store.ReplaceAll(ctx, entries, info); err != nil {
		return nil, fmt.Errorf("replace entries: %w", err)
	}

	stored, err := s.store.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("read build info: %w", err)
	}

	logger.Info("Built database %s with %d entries", stored.BuildID, stored.Entries)
	return stored, nil
}

// Open loads every stored entry into an immutable snapshot. A store that
// was never built opens as an empty database.
func (s *DatabaseService) Open(ctx context.Context) (*domain.SequenceDatabase, error) {
	if s.store == nil {
		return nil, errors.New("entry store unavailable")
	}

	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	logger.Debug("Opened database with %d entries", len(entries))
	return domain.NewSequenceDatabase(entries), nil
}

// Info describes the current build.
func (s *DatabaseService) Info(ctx context.Context) (*domain.DatabaseInfo, error) {
	if s.store == nil {
		return nil, errors.New("entry store unavailable")
	}
	return s.store.Info(ctx)
}
