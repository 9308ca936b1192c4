// Package ir provides the plain-data representation of a ranking session.
//
// This package contains type definitions, deep copies, validation and the
// canonical JSON used for content hashes. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - A SortState is plain data: the complete continuation of a paused
//     merge sort lives in its fields, so it survives JSON round trips,
//     restarts and undo without any hidden call stack
//   - Groups are never nil once published; an empty Group is a placeholder
//     left behind by a tie
//   - JSON tags use the camelCase shape of the persisted session
//     ({state, history}) so saved sessions stay readable by other tools
//   - No floats in hashed data; progress is derived, never stored
package ir
