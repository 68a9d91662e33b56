package editor

import "sync/atomic"

// Clock is a monotonic revision counter. Every committed edit is stamped
// with a strictly increasing revision, which autosave file naming and the
// project catalog use for ordering. Never wall-clock based.
//
// Thread-safety: safe for concurrent use via atomic operations, though
// the editor's single-writer design means one goroutine normally calls
// Next().
type Clock struct {
	rev atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a specific revision. Used when
// reopening a project recorded in the catalog.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.rev.Store(start)
	return c
}

// Next returns the next revision and increments the clock.
func (c *Clock) Next() int64 {
	return c.rev.Add(1)
}

// Current returns the current revision without incrementing.
func (c *Clock) Current() int64 {
	return c.rev.Load()
}
