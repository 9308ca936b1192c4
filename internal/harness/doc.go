// Package harness runs scripted ranking scenarios against a persisted
// session and checks the outcome.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: reversed_three
//	description: "A reversed list sorts with two comparisons"
//	items: [c, b, a]          # initial order, used as given
//	max_history: 50           # optional
//	steps: [left, undo]       # optional explicit operations, run first
//	strategy:                 # optional; answers every remaining comparison
//	  order: [a, b, c]        # best first
//	assertions:
//	  - type: ranking
//	    ranking: [[a], [b], [c]]
//	  - type: comparisons
//	    count: 3
//
// A strategy is either order (a total order, best first), keys (lower key
// ranks higher, equal keys tie) or tie: true (every comparison ties).
//
// # Execution
//
// Each scenario runs in a fresh in-memory store through a journal, so
// every operation is logged exactly as in the CLI. After the run the log
// is replayed and the replay must reproduce every recorded state hash.
//
// # Golden Files
//
// RunWithGolden compares the canonical JSON trace of a run against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
