// Package queue persists highlights runs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, progress
// updates, and status transitions. A run records the inputs it was started
// with, where its outputs landed, and how far it got, so the CLI can report
// on past runs without re-reading any pipeline artifacts.
//
// The database is run bookkeeping, not an archive of results: the EDL and
// clips live on disk under the output directory, and the ledger only points
// at them. Schema changes bump the version in schema.go; users clear the
// database to adopt the new schema.
package queue
