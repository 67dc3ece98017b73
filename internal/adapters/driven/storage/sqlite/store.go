package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/otuscan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
)

// FileName is the name of the SQLite file inside a database directory.
const FileName = "otus.db"

// Ensure Store implements the interface.
var _ driven.EntryStore = (*Store)(nil)

// Store is a SQLite-backed sequence database.
type Store struct {
	db   *sql.DB
	dir  string
	path string
}

// ResolveDir returns dbDir, or ~/.otuscan/db when dbDir is empty.
func ResolveDir(dbDir string) (string, error) {
	if dbDir != "" {
		return dbDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".otuscan", "db"), nil
}

// NewStore opens, creating if needed, the database in dbDir.
// If dbDir is empty, defaults to ~/.otuscan/db.
func NewStore(dbDir string) (*Store, error) {
	dbDir, err := ResolveDir(dbDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dbDir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return openDir(dbDir)
}

// OpenStore opens the database already built in dbDir. Nothing is created
// on disk; a directory without a database file yields domain.ErrNotFound.
func OpenStore(dbDir string) (*Store, error) {
	dbDir, err := ResolveDir(dbDir)
	if err != nil {
		return nil, err
	}
	if !Exists(dbDir) {
		return nil, fmt.Errorf("%w: no database in %s (build one with makedb)", domain.ErrNotFound, dbDir)
	}
	return openDir(dbDir)
}

func openDir(dbDir string) (*Store, error) {
	dbPath := filepath.Join(dbDir, FileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		dir:  dbDir,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Exists reports whether dbDir already holds a database file.
func Exists(dbDir string) bool {
	info, err := os.Stat(filepath.Join(dbDir, FileName))
	return err == nil && !info.IsDir()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ReplaceAll swaps the stored build for entries in one transaction.
// Entry order is kept through an explicit position column.
func (s *Store) ReplaceAll(ctx context.Context, entries []domain.OtuEntry, info domain.DatabaseInfo) (err error) {
	if info.BuildID == "" {
		info.BuildID = uuid.New().String()
	}
	if info.BuiltAt.IsZero() {
		info.BuiltAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM builds"); err != nil {
		return fmt.Errorf("clearing builds: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, built_at, entries, markers, samples)
		VALUES (?, ?, ?, ?, ?)
	`, info.BuildID, info.BuiltAt.UTC().Format(time.RFC3339Nano), len(entries), info.Markers, info.Samples)
	if err != nil {
		return fmt.Errorf("saving build: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, build_id, position, marker, sample, sequence, num_hits, coverage, taxonomy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err = stmt.ExecContext(ctx, uuid.New().String(), info.BuildID, i,
			e.Marker, e.Sample, e.Sequence, e.NumHits, e.Coverage, e.Taxonomy)
		if err != nil {
			return fmt.Errorf("saving entry %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing build: %w", err)
	}
	return nil
}

// All returns every stored entry in storage order.
func (s *Store) All(ctx context.Context) ([]domain.OtuEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT marker, sample, sequence, num_hits, coverage, taxonomy
		FROM entries ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.OtuEntry
	for rows.Next() {
		var e domain.OtuEntry
		if err := rows.Scan(&e.Marker, &e.Sample, &e.Sequence, &e.NumHits, &e.Coverage, &e.Taxonomy); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

// Info returns the metadata of the current build, or domain.ErrNotFound
// if the database was never built.
func (s *Store) Info(ctx context.Context) (*domain.DatabaseInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, built_at, entries, markers, samples FROM builds LIMIT 1
	`)

	var info domain.DatabaseInfo
	var builtAt string
	if err := row.Scan(&info.BuildID, &builtAt, &info.Entries, &info.Markers, &info.Samples); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning build: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		return nil, fmt.Errorf("parsing build time: %w", err)
	}
	info.BuiltAt = t
	info.Location = s.dir

	return &info, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
