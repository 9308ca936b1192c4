package engine

import (
	"math"

	"github.com/roach88/rankr/internal/ir"
)

// Progress estimates how far the sort has come, in [0, 1].
//
// The estimate is the completed pass count plus the output cursor's
// position within the current pass, each pass weighted equally. Passes do
// not all cost the same number of comparisons, so this is a UI hint only:
// it is non-decreasing across decisions and reaches 1 at the end, nothing
// more.
func Progress(state ir.SortState, itemCount int) float64 {
	if state.Ended() || itemCount < 2 {
		return 1
	}

	totalPasses := math.Ceil(math.Log2(float64(itemCount)))
	currentPass := 0.0
	if state.CurrentSize > 1 {
		currentPass = math.Ceil(math.Log2(float64(state.CurrentSize)))
	}

	passFraction := 0.0
	if m := state.MergeState; m.Started() {
		passFraction = float64(m.ArrIdx) / float64(itemCount)
	}

	p := currentPass/totalPasses + passFraction/totalPasses
	return math.Max(0, math.Min(1, p))
}
