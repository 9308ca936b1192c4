package ir

import (
	"fmt"
	"slices"
)

// Item is an opaque ranked value, identified by its ID string.
// The engine never inspects an Item; it only moves it between groups.
type Item string

// Group is a sequence of Items currently tied at the same rank.
//
// A fresh Item starts life as a singleton Group. Groups grow only through
// a tie decision. An empty Group is a placeholder that keeps the slot count
// of SortState.Arr fixed for the duration of a pass.
type Group []Item

// IsPlaceholder reports whether g is an empty tie leftover.
func (g Group) IsPlaceholder() bool {
	return len(g) == 0
}

// Clone returns an independent copy of g. The copy is never nil, so a
// cloned placeholder still serializes as [] rather than null.
func (g Group) Clone() Group {
	out := make(Group, len(g))
	copy(out, g)
	return out
}

// Decision is the caller's answer to a pending comparison.
type Decision string

const (
	// DecisionLeft ranks the left group above the right group.
	DecisionLeft Decision = "left"

	// DecisionRight ranks the right group above the left group.
	DecisionRight Decision = "right"

	// DecisionTie merges both groups into one group of equal rank.
	DecisionTie Decision = "tie"
)

// ValidDecisions lists the accepted decisions in presentation order.
var ValidDecisions = []Decision{DecisionLeft, DecisionRight, DecisionTie}

// ParseDecision converts user input into a Decision.
func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	if !slices.Contains(ValidDecisions, d) {
		return "", fmt.Errorf("invalid decision %q: must be one of %v", s, ValidDecisions)
	}
	return d, nil
}

// Status is the phase of the outer merge-sort loop.
type Status string

const (
	// StatusPaused marks a merge that is waiting for a decision.
	// It is the zero value and is omitted from JSON.
	StatusPaused Status = ""

	// StatusWaiting marks a state whose pass has not started yet.
	StatusWaiting Status = "waiting"

	// StatusDone is transient: the merge of the pair at
	// (CurrentSize, LeftStart) has just finished and must not be replayed.
	StatusDone Status = "done"

	// StatusEnd is terminal: Arr is fully ranked.
	StatusEnd Status = "end"
)

// MergeState holds the cursor of the run pair being merged.
//
// Start, Mid and End bound the runs Arr[Start..Mid] and Arr[Mid+1..End]
// (inclusive). LeftArr and RightArr are snapshots of those runs taken when
// the merge begins; they are nil until then.
type MergeState struct {
	Start int `json:"start"`
	Mid   int `json:"mid"`
	End   int `json:"end"`

	LeftArr     []Group `json:"leftArr,omitempty"`
	RightArr    []Group `json:"rightArr,omitempty"`
	LeftArrIdx  int     `json:"leftArrIdx"`
	RightArrIdx int     `json:"rightArrIdx"`
	ArrIdx      int     `json:"arrIdx"`
}

// Started reports whether the run snapshots and cursors are populated.
func (m *MergeState) Started() bool {
	return m != nil && m.LeftArr != nil && m.RightArr != nil
}

// Clone returns a deep copy of m.
func (m *MergeState) Clone() *MergeState {
	if m == nil {
		return nil
	}
	out := *m
	out.LeftArr = cloneGroups(m.LeftArr)
	out.RightArr = cloneGroups(m.RightArr)
	return &out
}

// SortState is the entire resumable state of a bottom-up merge sort.
//
// INVARIANTS:
//   - len(Arr) is fixed for the lifetime of the state
//   - Status == StatusEnd iff MergeState == nil (for published states)
//   - the engine never presents an empty Group for comparison
type SortState struct {
	Arr         []Group     `json:"arr"`
	CurrentSize int         `json:"currentSize"`
	LeftStart   int         `json:"leftStart"`
	Status      Status      `json:"status,omitempty"`
	MergeState  *MergeState `json:"mergeState,omitempty"`
}

// Clone returns a structurally independent copy of s. History snapshots
// must be clones because Step rewrites Arr slots.
func (s SortState) Clone() SortState {
	out := s
	out.Arr = cloneGroups(s.Arr)
	out.MergeState = s.MergeState.Clone()
	return out
}

// Ended reports whether the ranking is complete.
func (s SortState) Ended() bool {
	return s.Status == StatusEnd
}

// Snapshot is the persisted shape of a session: the current state plus
// the undo history, oldest first.
type Snapshot struct {
	State   SortState   `json:"state"`
	History []SortState `json:"history"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		State:   s.State.Clone(),
		History: make([]SortState, len(s.History)),
	}
	for i, h := range s.History {
		out.History[i] = h.Clone()
	}
	return out
}

func cloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
