package engine

import (
	"github.com/roach88/rankr/internal/ir"
)

// Pair is the comparison currently awaiting a decision.
type Pair struct {
	Left  ir.Group `json:"left"`
	Right ir.Group `json:"right"`
}

// CurrentItem returns the two groups awaiting a decision.
//
// ok is false when the sort has ended or the state carries no usable
// cursors. The returned groups are never empty and are copies, so callers
// may keep them.
func CurrentItem(state ir.SortState) (pair Pair, ok bool) {
	if !pending(state) {
		return Pair{}, false
	}
	m := state.MergeState
	return Pair{
		Left:  m.LeftArr[m.LeftArrIdx].Clone(),
		Right: m.RightArr[m.RightArrIdx].Clone(),
	}, true
}

// Ranking returns the published view of state.Arr: a copy with tie
// placeholders removed. For an ended state this is the final ranking,
// best first; for a paused state it is an intermediate view.
func Ranking(state ir.SortState) []ir.Group {
	out := make([]ir.Group, 0, len(state.Arr))
	for _, g := range state.Arr {
		if g.IsPlaceholder() {
			continue
		}
		out = append(out, g.Clone())
	}
	return out
}

// Comparisons returns an upper bound on the comparisons a full sort of n
// items can take: the bottom-up merge sort worst case, sum over passes of
// n - runs merged. Ties only reduce the real count.
func Comparisons(n int) int {
	total := 0
	for size := 1; size < n; size *= 2 {
		for left := 0; left < n-1; left += 2 * size {
			mid := min(left+size-1, n-1)
			end := min(left+2*size-1, n-1)
			if end > mid {
				total += end - left
			}
		}
	}
	return total
}
