// Package sqlite provides the persisted sequence database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A database is a directory holding a single otus.db file
// with two tables:
//
//   - builds: metadata of the current build (id, time, counts)
//   - entries: the OTU entries of that build, in storage order
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database directory is ~/.otuscan/db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Rebuilds run in a single
// transaction, so readers see either the old or the new build.
package sqlite
