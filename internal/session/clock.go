package session

import "sync/atomic"

// Clock is a monotonic logical clock stamping applied operations.
//
// Every decision and every effective undo gets a strictly increasing seq.
// The store orders its decision log by seq, never by wall time, so a
// replay sees the operations in the order they happened.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a known sequence number.
// Used when a saved session is loaded.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
