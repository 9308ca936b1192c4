package harness

import (
	"github.com/roach88/rankr/internal/ir"
)

// TraceEvent records one applied operation.
type TraceEvent struct {
	Seq int64  `json:"seq"`
	Op  string `json:"op"` // left, right, tie or undo

	// Left and Right are the groups that were compared. Empty for undos
	// and for decisions made after the ranking ended.
	Left  ir.Group `json:"left,omitempty"`
	Right ir.Group `json:"right,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the replay matched and all assertions hold.
	Pass bool `json:"pass"`

	// Trace contains every applied operation in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Ranking     []ir.Group `json:"ranking"`
	Comparisons int        `json:"comparisons"`
	Undos       int        `json:"undos"`
	HistoryLen  int        `json:"history_len"`
	Ended       bool       `json:"ended"`

	// Deterministic is true when replaying the operation log reproduced
	// every recorded state hash.
	Deterministic bool `json:"deterministic"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Ranking: []ir.Group{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends an operation to the trace and updates the counters.
func (r *Result) addEvent(event TraceEvent) {
	r.Trace = append(r.Trace, event)
	if event.Op == StepUndo {
		r.Undos++
	} else {
		r.Comparisons++
	}
}
