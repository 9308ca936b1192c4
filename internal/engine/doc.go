// Package engine implements the resumable pairwise merge sort.
//
// The engine ranks opaque items using only answers to "left, right or tie"
// questions. It cannot run to completion in one pass: it performs one
// comparison, returns control with the question encoded in the state, and
// resumes exactly where it left off when Step is called with the answer.
//
// ARCHITECTURE:
//
// Continuation as Data:
// There is no suspended goroutine or call stack. The outer bottom-up loop
// (run size doubling, pair offset advancing) and the inner merge loop are
// pure functions of the cursors stored in ir.SortState. Resuming means
// replaying the nested loops from the recorded cursor position, using the
// transient "done" status to skip exactly the one pair that just finished.
//
// State Machine:
//
//	waiting -> merge -> [paused <-> Step]* -> done -> next pair ... -> end
//
// "end" is the only terminal state. The engine has no error states:
// malformed input to Step is returned unchanged.
//
// Ties:
// A tie writes both groups into a single output slot and leaves an empty
// placeholder group in the right run. The merge driver copies that
// placeholder through without asking, so len(Arr) never changes and no
// comparison ever involves an empty group. Callers filter placeholders
// with Ranking before presenting results.
//
// CRITICAL PATTERNS:
//
// Purity:
// Step never mutates the state it is given. Every call works on a deep
// clone, so callers may keep old states for undo.
//
// Determinism:
// The same initial items and the same decision sequence always produce
// the same states. No randomness; shuffling is the caller's job.
package engine
