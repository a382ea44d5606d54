package tiercache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/pkg/errors"

	"github.com/tiercache/tiercache/tier"
)

// Cache is the single surface callers talk to. It composes three
// bounded tiers; lookups walk fast, medium, slow and copy a live hit
// from a slower tier into the fast one.
//
// Every operation takes a context and returns an error even though all
// of them resolve synchronously today. The signatures are the contract
// a remote-backed tier would need, so one can be added later without
// breaking callers. No in-core operation blocks or consults the
// context.
type Cache interface {
	// Get returns the first live value found in tier order. Live hits
	// in medium or slow are promoted into the fast tier with a fresh
	// write time and the same ttl. Stale entries are filtered from the
	// result but left in place for Cleanup.
	Get(ctx context.Context, key string) (value any, ok bool, err error)
	// Set writes into the named tier only; other tiers are not
	// invalidated. A zero ttl means the configured DefaultTTL; a
	// negative one fails with ErrInvalidTTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration, level Level) error
	// Delete removes key from all three tiers. Idempotent.
	Delete(ctx context.Context, key string) error
	// Clear empties all tiers.
	Clear(ctx context.Context) error
	// Has reports membership in any tier. Like Len and Keys it does
	// not judge staleness; only Get does.
	Has(ctx context.Context, key string) (bool, error)
	// Len is the sum of raw tier sizes, stale entries included.
	Len(ctx context.Context) (int, error)
	// Keys is the union of keys across tiers, stale entries included.
	Keys(ctx context.Context) ([]string, error)
	// Cleanup sweeps every tier and removes entries older than their
	// ttl. It is the only proactive removal of stale data; run it from
	// a scheduler such as Sweeper.
	Cleanup(ctx context.Context) (removed int, err error)
	// Stats snapshots this instance's counters.
	Stats() Stats
}

// New builds a cache instance with its own tiers, clock and counters.
// A nil logger falls back to error-level text logging on stderr.
func New(l log.Interface, conf Config) Cache {
	return newCache(l, conf)
}

func newCache(l log.Interface, conf Config) *cache {
	conf = conf.withDefaults()
	if l == nil {
		l = &log.Logger{Handler: text.Default, Level: log.ErrorLevel}
	}
	c := &cache{
		log:        l,
		defaultTTL: conf.DefaultTTL,
		now:        conf.Now,
		metrics:    newCacheMetrics(),
	}
	for lv := Fast; lv < tiersNum; lv++ {
		c.tiers[lv] = tier.New(tier.Config{
			Name:     lv.String(),
			Capacity: conf.capacity(lv),
			Now:      conf.Now,
			OnEvict:  c.onEvict,
		})
	}
	return c
}

// One lock covers every operation, so the read-then-write of the
// promotion path is atomic relative to concurrent Delete, Clear and
// Cleanup on the same key.
type cache struct {
	sync.Mutex
	log        log.Interface
	defaultTTL time.Duration
	now        func() time.Time
	tiers      [tiersNum]*tier.Store
	metrics    *cacheMetrics
}

var _ Cache = (*cache)(nil)

func (c *cache) Get(ctx context.Context, key string) (any, bool, error) {
	c.Lock()
	defer c.Unlock()
	now := c.now()
	if e, ok := c.tiers[Fast].Get(key); ok && !e.Expired(now) {
		c.metrics.hits.Inc(1)
		return e.Value, true, nil
	}
	for _, lv := range [...]Level{Medium, Slow} {
		e, ok := c.tiers[lv].Get(key)
		if !ok || e.Expired(now) {
			continue
		}
		c.promote(key, e)
		c.metrics.hits.Inc(1)
		return e.Value, true, nil
	}
	c.metrics.misses.Inc(1)
	return nil, false, nil
}

// promote copies a live entry into the fast tier. The copy gets a
// fresh write time and keeps the source ttl: a value proven live in a
// slower tier is re-warmed relative to its new tier. The source entry
// stays where it is.
func (c *cache) promote(key string, e tier.Entry) {
	c.tiers[Fast].Put(key, e.Value, e.TTL, e.Meta)
	c.metrics.promotions.Inc(1)
	c.log.WithFields(log.Fields{"key": key, "from": e.Origin}).Debug("promoted to fast tier")
}

func (c *cache) Set(ctx context.Context, key string, value any, ttl time.Duration, level Level) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if ttl <= 0 {
		return errors.Wrapf(ErrInvalidTTL, "set %q with ttl %v", key, ttl)
	}
	c.assertLevel(level)
	c.Lock()
	defer c.Unlock()
	c.tiers[level].Put(key, value, ttl, nil)
	c.log.WithFields(log.Fields{"key": key, "tier": level.String(), "ttl": ttl}).Debug("set")
	return nil
}

func (c *cache) Delete(ctx context.Context, key string) error {
	c.Lock()
	defer c.Unlock()
	for _, t := range c.tiers {
		t.Delete(key)
	}
	return nil
}

func (c *cache) Clear(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()
	for _, t := range c.tiers {
		t.Clear()
	}
	return nil
}

func (c *cache) Has(ctx context.Context, key string) (bool, error) {
	c.Lock()
	defer c.Unlock()
	for _, t := range c.tiers {
		if t.Contains(key) {
			return true, nil
		}
	}
	return false, nil
}

func (c *cache) Len(ctx context.Context) (int, error) {
	c.Lock()
	defer c.Unlock()
	var total int
	for _, t := range c.tiers {
		total += t.Len()
	}
	return total, nil
}

func (c *cache) Keys(ctx context.Context) ([]string, error) {
	c.Lock()
	defer c.Unlock()
	seen := make(map[string]struct{})
	var keys []string
	for _, t := range c.tiers {
		for _, k := range t.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (c *cache) Cleanup(ctx context.Context) (int, error) {
	c.Lock()
	defer c.Unlock()
	now := c.now()
	var removed int
	for _, t := range c.tiers {
		removed += t.SweepExpired(now)
	}
	if removed > 0 {
		c.metrics.expired.Inc(int64(removed))
		c.log.WithField("removed", removed).Debug("swept stale entries")
	}
	return removed, nil
}

func (c *cache) Stats() Stats { return c.metrics.snapshot() }

func (c *cache) onEvict(e tier.Entry) {
	c.metrics.evictions.Inc(1)
	c.log.WithFields(log.Fields{"key": e.Key, "tier": e.Origin}).Debug("evicted")
}

func (c *cache) assertLevel(level Level) {
	if level >= tiersNum {
		panic(fmt.Sprintf("unknown tier level %d", level))
	}
}
