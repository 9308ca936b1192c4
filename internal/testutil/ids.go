package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns session IDs from a fixed sequence.
//
// This enables deterministic test execution and golden snapshot comparison.
// With no configured IDs it generates "test-session-1", "test-session-2", ...
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next session ID.
// Implements session.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("test-session-%d", g.idx)
}
