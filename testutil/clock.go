package testutil

import "time"

// Clock is a manually advanced clock for deterministic expiry and
// eviction tests. Plug its Now into a store or cache config.
type Clock struct {
	now time.Time
}

func NewClock() *Clock {
	// Arbitrary fixed start makes failure output stable between runs.
	return &Clock{now: time.Unix(1700000000, 0)}
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }
