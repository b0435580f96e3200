// Package journal provides SQLite-backed durable storage for dispatched
// actions.
//
// The journal is an append-only log: one row per processed dispatch, keyed
// by the store's sequence number and holding the action as the stamped
// tagged record ({"type", "payload"}). Because order ids and creation times
// are stamped before reduction, replaying the log through state.Reduce
// rebuilds exactly the state the live store held.
//
// # Critical Patterns
//
// Idempotent appends:
//   - seq is the primary key and inserts use ON CONFLICT DO NOTHING
//   - re-recording a dispatch after a crash is harmless
//
// Logical ordering:
//   - replay orders by seq, never by recorded_at
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The journal also keeps the remote service's access token so a signed-in
// session survives restarts.
package journal
