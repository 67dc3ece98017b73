// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EntryStore: Sequence database persistence (SQLite or in-memory)
//   - ConfigStore: Application configuration (TOML)
//   - TableWatcher: Change notification for OTU table files
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
