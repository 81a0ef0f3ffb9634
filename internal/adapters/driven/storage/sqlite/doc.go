// Package sqlite provides the SQLite-backed story library.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The Store exposes a StoryStore that keeps
// imported stories, their nodes and their choices in a single database file.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.storycsv/data/stories.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
