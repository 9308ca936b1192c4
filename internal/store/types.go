package store

import (
	"github.com/roach88/rankr/internal/ir"
)

// SessionRecord describes a ranking session's immutable setup.
type SessionRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Seed          int64     `json:"seed"`
	Items         []ir.Item `json:"items"` // initial order, after shuffling
	ItemsHash     string    `json:"items_hash"`
	MaxHistory    int       `json:"max_history"`
	EngineVersion string    `json:"engine_version"`
}

// OperationKind is a logged session operation: a decision or an undo.
type OperationKind string

// OperationUndo is logged for every effective undo. Decisions are logged
// with their ir.Decision value as the kind.
const OperationUndo OperationKind = "undo"

// Operation is one row of the append-only operation log.
type Operation struct {
	Seq       int64         `json:"seq"`
	Kind      OperationKind `json:"kind"`
	StateHash string        `json:"state_hash"` // hash of the state after the operation
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Items      int    `json:"items"`
	Seq        int64  `json:"seq"`
	Decisions  int    `json:"decisions"`
	HistoryLen int    `json:"history_len"`
	Ended      bool   `json:"ended"`
	StateHash  string `json:"state_hash"`
}

// SavedSession is a fully loaded session: setup, latest snapshot and the
// seq of the last logged operation.
type SavedSession struct {
	Record   SessionRecord
	Snapshot ir.Snapshot
	Seq      int64
}
