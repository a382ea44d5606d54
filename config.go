package tiercache

import "time"

// Defaults applied by New for omitted Config options.
const (
	DefaultFastCapacity   = 128
	DefaultMediumCapacity = 512
	DefaultSlowCapacity   = 2048
	DefaultTTL            = 5 * time.Minute
)

type Config struct {
	// Per-tier entry capacities. A tier at or over its capacity evicts
	// its oldest writes before accepting a new entry.
	FastCapacity   int
	MediumCapacity int
	SlowCapacity   int
	// DefaultTTL is used by Set when the caller passes a zero ttl.
	DefaultTTL time.Duration
	// Now overrides the cache clock, for tests that need to advance
	// time deterministically. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.FastCapacity == 0 {
		c.FastCapacity = DefaultFastCapacity
	}
	if c.MediumCapacity == 0 {
		c.MediumCapacity = DefaultMediumCapacity
	}
	if c.SlowCapacity == 0 {
		c.SlowCapacity = DefaultSlowCapacity
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = DefaultTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

func (c Config) capacity(l Level) int {
	switch l {
	case Fast:
		return c.FastCapacity
	case Medium:
		return c.MediumCapacity
	}
	return c.SlowCapacity
}
