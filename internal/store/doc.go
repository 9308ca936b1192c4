// Package store provides SQLite-backed durable storage for ranking sessions.
//
// The store keeps three tables:
//   - Sessions: name, shuffle seed and the initial item order
//   - Snapshots: the latest persisted {state, history} of each session
//   - Operations: an append-only log of decisions and undos
//
// # Critical Patterns
//
// Atomic Operations:
//   - RecordOperation writes the log row and the new snapshot in one
//     transaction; after a crash either both exist or neither does
//
// Logical Time:
//   - All ordering uses seq INTEGER from the session clock, NEVER timestamps
//   - Enables deterministic replay regardless of wall time
//
// Verified Payloads:
//   - Snapshots are JSON compressed with zstd
//   - An xxhash64 checksum of the JSON is checked on every load, and the
//     decoded snapshot is structurally validated before it is returned
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
