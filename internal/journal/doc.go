// Package journal persists a ranking session as it is used.
//
// A Journal wraps a session.Session and a store.Store. Every effective
// operation (a decision or an undo) is written to the session's operation
// log together with the new snapshot in one transaction, stamped with the
// session's logical clock.
//
// Verify replays the log from the recorded initial item order and checks
// every state hash, which is how the CLI's replay command proves that the
// engine is deterministic and that a stored session was not edited out of
// band.
package journal
