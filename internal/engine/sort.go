package engine

import (
	"github.com/roach88/rankr/internal/ir"
)

// InitSort wraps each item as a singleton group, in the order given.
//
// Callers wanting a randomized comparison order must shuffle items first.
// With fewer than two items the returned state has already ended;
// otherwise it is paused on the first comparison.
func InitSort(items []ir.Item) ir.SortState {
	arr := make([]ir.Group, len(items))
	for i, item := range items {
		arr[i] = ir.Group{item}
	}

	state := ir.SortState{
		Arr:         arr,
		CurrentSize: 1,
		LeftStart:   0,
	}

	if len(items) <= 1 {
		state.Status = ir.StatusEnd
		return state
	}

	state.Status = ir.StatusWaiting
	return mergeSort(state)
}

// Step applies one pending decision and advances to the next comparison
// (or to the end of the sort).
//
// The given state is not modified. If it has no pending comparison, or
// its cursors are out of range, or the decision is unknown, the state is
// returned unchanged.
func Step(decision ir.Decision, state ir.SortState) ir.SortState {
	if !pending(state) {
		return state
	}

	next := state.Clone()
	m := next.MergeState
	left := m.LeftArr[m.LeftArrIdx]
	right := m.RightArr[m.RightArrIdx]

	switch decision {
	case ir.DecisionLeft:
		next.Arr[m.ArrIdx] = left
		m.LeftArrIdx++

	case ir.DecisionRight:
		next.Arr[m.ArrIdx] = right
		m.RightArrIdx++

	case ir.DecisionTie:
		combined := make(ir.Group, 0, len(left)+len(right))
		combined = append(combined, left...)
		combined = append(combined, right...)
		next.Arr[m.ArrIdx] = combined

		// The right group is consumed without an output slot of its own.
		// merge copies the placeholder through on its next call, which
		// keeps the slot count of Arr fixed.
		m.RightArr[m.RightArrIdx] = ir.Group{}
		m.LeftArrIdx++

	default:
		return state
	}
	m.ArrIdx++

	next = merge(next)
	if next.Status == ir.StatusDone {
		return mergeSort(next)
	}
	return next
}

// pending reports whether state holds a comparison that Step can apply.
func pending(state ir.SortState) bool {
	m := state.MergeState
	if !m.Started() {
		return false
	}
	return m.LeftArrIdx >= 0 && m.LeftArrIdx < len(m.LeftArr) &&
		m.RightArrIdx >= 0 && m.RightArrIdx < len(m.RightArr) &&
		m.ArrIdx >= 0 && m.ArrIdx < len(state.Arr)
}

// mergeSort is the outer bottom-up driver. It starts merging run pairs
// from the recorded (CurrentSize, LeftStart) position and returns as soon
// as a merge needs a decision, or with StatusEnd once every pass is done.
func mergeSort(state ir.SortState) ir.SortState {
	for {
		state = mergePass(state)
		if state.Status != ir.StatusDone {
			return state
		}
	}
}

// mergePass replays the nested loops from the recorded cursors and runs
// at most one merge. A StatusDone input means the pair at the recorded
// cursors has already been merged; that single iteration is skipped.
func mergePass(state ir.SortState) ir.SortState {
	n := len(state.Arr)
	skip := state.Status == ir.StatusDone

	for size := state.CurrentSize; size <= n-1; size *= 2 {
		from := 0
		if size == state.CurrentSize {
			from = state.LeftStart
		}

		for leftStart := from; leftStart < n-1; leftStart += 2 * size {
			if skip {
				skip = false
				continue
			}

			state.CurrentSize = size
			state.LeftStart = leftStart
			state.Status = ir.StatusWaiting
			state.MergeState = &ir.MergeState{
				Start: leftStart,
				Mid:   min(leftStart+size-1, n-1),
				End:   min(leftStart+2*size-1, n-1),
			}
			return merge(state)
		}
	}

	state.Status = ir.StatusEnd
	state.MergeState = nil
	return state
}

// merge merges Arr[Start..Mid] with Arr[Mid+1..End]. It returns a paused
// state when two real groups need comparing, or StatusDone once the pair
// is fully merged.
//
// merge mutates state.Arr and state.MergeState in place; callers pass a
// state they own.
func merge(state ir.SortState) ir.SortState {
	m := state.MergeState
	if !m.Started() {
		m.LeftArr = cloneRun(state.Arr[m.Start : m.Mid+1])
		m.RightArr = cloneRun(state.Arr[m.Mid+1 : m.End+1])
		m.LeftArrIdx = 0
		m.RightArrIdx = 0
		m.ArrIdx = m.Start
	}

	for m.LeftArrIdx < len(m.LeftArr) && m.RightArrIdx < len(m.RightArr) {
		// Placeholders never reach the caller; copy them through.
		if m.RightArr[m.RightArrIdx].IsPlaceholder() {
			state.Arr[m.ArrIdx] = m.RightArr[m.RightArrIdx]
			m.RightArrIdx++
			m.ArrIdx++
			continue
		}
		if m.LeftArr[m.LeftArrIdx].IsPlaceholder() {
			state.Arr[m.ArrIdx] = m.LeftArr[m.LeftArrIdx]
			m.LeftArrIdx++
			m.ArrIdx++
			continue
		}

		state.Status = ir.StatusPaused
		return state
	}

	// One side is exhausted; the rest is already ordered.
	for ; m.LeftArrIdx < len(m.LeftArr); m.LeftArrIdx++ {
		state.Arr[m.ArrIdx] = m.LeftArr[m.LeftArrIdx]
		m.ArrIdx++
	}
	for ; m.RightArrIdx < len(m.RightArr); m.RightArrIdx++ {
		state.Arr[m.ArrIdx] = m.RightArr[m.RightArrIdx]
		m.ArrIdx++
	}

	state.Status = ir.StatusDone
	return state
}

// cloneRun copies a run of groups. The result is never nil, even for an
// empty right run, so Started stays true once a merge has begun.
func cloneRun(run []ir.Group) []ir.Group {
	out := make([]ir.Group, len(run))
	for i, g := range run {
		out[i] = g.Clone()
	}
	return out
}
