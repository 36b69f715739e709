// Package sqlite provides a SQLite-based implementation of the
// RecordStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It persists:
//
//   - compile_records: per-(path, rep) compile outcomes driving staleness
//   - build_runs: build pass history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory as .up.sql/.down.sql pairs.
//
// # Data Location
//
// By default, the database is stored at <site>/.sitesmith/records.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
