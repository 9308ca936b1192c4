// Package testutil provides deterministic helpers shared by tests.
package testutil

import (
	"fmt"

	"github.com/roach88/rankr/internal/ir"
)

// Oracle answers a pending comparison the way a user with a fixed opinion
// would. Implementations must be pure so that repeated runs take the same
// path through the sort.
type Oracle func(left, right ir.Group) ir.Decision

// ByRank answers by the rank of each group's first item: lower rank wins.
// Items of equal rank are reported as a tie. Items missing from ranks
// panic, which catches tests that feed the engine unknown items.
func ByRank(ranks map[ir.Item]int) Oracle {
	rankOf := func(g ir.Group) int {
		if len(g) == 0 {
			panic("testutil: oracle asked to compare an empty group")
		}
		r, ok := ranks[g[0]]
		if !ok {
			panic(fmt.Sprintf("testutil: no rank for item %q", g[0]))
		}
		return r
	}

	return func(left, right ir.Group) ir.Decision {
		l, r := rankOf(left), rankOf(right)
		switch {
		case l < r:
			return ir.DecisionLeft
		case l > r:
			return ir.DecisionRight
		default:
			return ir.DecisionTie
		}
	}
}

// InOrder ranks items by their position in want: want[0] is best.
func InOrder(want []ir.Item) Oracle {
	ranks := make(map[ir.Item]int, len(want))
	for i, item := range want {
		ranks[item] = i
	}
	return ByRank(ranks)
}

// AlwaysTie answers every comparison with a tie.
func AlwaysTie() Oracle {
	return func(ir.Group, ir.Group) ir.Decision {
		return ir.DecisionTie
	}
}

// Items returns n items named prefix-00, prefix-01, ... in ascending order.
func Items(prefix string, n int) []ir.Item {
	items := make([]ir.Item, n)
	for i := range items {
		items[i] = ir.Item(fmt.Sprintf("%s-%02d", prefix, i))
	}
	return items
}

// Reversed returns a reversed copy of items.
func Reversed(items []ir.Item) []ir.Item {
	out := make([]ir.Item, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// Interleaved returns a deterministic, non-monotonic permutation of
// items: odd positions first, then even positions, each half reversed.
func Interleaved(items []ir.Item) []ir.Item {
	out := make([]ir.Item, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if i%2 == 1 {
			out = append(out, items[i])
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		if i%2 == 0 {
			out = append(out, items[i])
		}
	}
	return out
}

// Singletons wraps each item in its own group.
func Singletons(items []ir.Item) []ir.Group {
	out := make([]ir.Group, len(items))
	for i, item := range items {
		out[i] = ir.Group{item}
	}
	return out
}
