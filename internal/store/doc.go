// Package store provides SQLite-backed durable storage for legislative
// documents and the change log recorded alongside them.
//
// Documents (bills, calendars) are stored as JSON TEXT rows in a single
// documents table keyed by a hierarchical key string, e.g.
// "2013/bill/S1892A-2013". The changelog table is an append-only audit log:
// one row per document upsert or deletion, tagged with the source file and
// file date that caused it.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: tolerate lock contention
//   - Single connection: SQLite allows one writer at a time, and the
//     pipeline is single-writer by design
package store
