package store

import "sync/atomic"

// Clock is the store's logical clock: one tick per processed dispatch.
//
// Seq numbers order the journal and let a restarted store continue where
// the previous one stopped. Wall time is never used for ordering.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at start; the next tick is start+1.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current value without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
