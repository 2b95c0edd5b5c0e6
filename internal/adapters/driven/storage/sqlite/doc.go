// Package sqlite provides a SQLite-backed implementation of the document and
// chunk stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Chunks persist their
// embedding vectors as little-endian float32 blobs, so a corrupted vector
// index can be rebuilt from here without re-running extraction or embedding.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
