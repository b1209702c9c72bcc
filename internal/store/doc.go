// Package store provides SQLite-backed persistence for recorded scenario
// traces.
//
// A run is one execution of a scenario. Its trace entries are stored in the
// events table keyed by (run_id, seq).
//
// # Ordering
//
//   - Entries are ordered by their logical seq, never by timestamps.
//   - Run listings are ordered by created_at, then id, so that runs recorded
//     within the same second still list deterministically.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s for locks
//   - foreign_keys=ON: Enforce referential integrity
package store
