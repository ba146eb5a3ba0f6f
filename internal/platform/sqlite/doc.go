// Package sqlite provides SQLite-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles
// opening the database, applying the embedded schema migrations, and mapping
// between store entities and database records.
//
// The default DSN names a shared in-memory database, so recorded results last
// only as long as the process.
package sqlite
