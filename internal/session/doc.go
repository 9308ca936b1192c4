// Package session wraps the sort engine for interactive use.
//
// A Session owns the current SortState and a bounded undo history. Each
// decision pushes a copy of the pre-decision state onto the history and
// replaces the current state with engine.Step's result; Undo pops it back.
//
// Thread-safety model:
// A Session is a single-writer object. It is not safe for concurrent use;
// callers that share one across goroutines must serialize access.
//
// INVARIANTS:
//   - len(History()) <= MaxHistory() after any decision
//   - History entries are independent copies; Step never aliases them
//   - Every applied decision or undo advances the logical clock by one
package session
