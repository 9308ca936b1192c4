package catalog

import (
	"math/rand/v2"

	"github.com/roach88/rankr/internal/ir"
)

// NewSeed returns a random shuffle seed.
func NewSeed() int64 {
	return rand.Int64()
}

// Shuffle returns a copy of items in a pseudo-random order fully determined
// by seed. The same seed always yields the same order, so a recorded seed
// reproduces a session's initial order.
func Shuffle(items []ir.Item, seed int64) []ir.Item {
	out := make([]ir.Item, len(items))
	copy(out, items)
	r := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
