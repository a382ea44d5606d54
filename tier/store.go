package tier

import (
	"fmt"
	"time"
)

// evictShare is the fraction of capacity removed per eviction pass.
const evictShare = 0.2

// Config configures one Store.
type Config struct {
	// Name tags the store; entries are stamped with it as their Origin.
	Name string
	// Capacity is the entry count that triggers eviction on Put.
	Capacity int
	// OnEvict, when set, is called for every entry removed by capacity
	// eviction. The entry is already gone from the store when called.
	OnEvict func(Entry)
	// Now overrides the store clock. Defaults to time.Now.
	Now func() time.Time
}

// Store is one bounded cache tier: a key to Entry mapping that evicts
// its oldest written entries once Capacity is reached. Entries are kept
// in a write-ordered list, so eviction candidates are taken from the
// head without sorting.
//
// Store does no locking. The composing cache serializes access,
// covering the whole read-modify-write of its promotion path.
type Store struct {
	name     string
	capacity int
	table    map[string]*node
	queue    *queue
	onEvict  func(Entry)
	now      func() time.Time
}

func New(conf Config) *Store {
	if conf.Capacity <= 0 {
		panic(fmt.Sprintf("tier %q: non-positive capacity %v", conf.Name, conf.Capacity))
	}
	if conf.Now == nil {
		conf.Now = time.Now
	}
	return &Store{
		name:     conf.Name,
		capacity: conf.Capacity,
		table:    make(map[string]*node),
		queue:    newQueue(),
		onEvict:  conf.OnEvict,
		now:      conf.Now,
	}
}

func (s *Store) Name() string { return s.name }

// Put inserts or overwrites the entry for key with a fresh write time.
// If the store is at or over capacity before the insert, the oldest
// entries are evicted first. TTL must be positive; callers validate
// user input before it gets here.
func (s *Store) Put(key string, value any, ttl time.Duration, meta map[string]any) {
	if ttl <= 0 {
		panic(fmt.Sprintf("tier %q: put %q with non-positive ttl %v", s.name, key, ttl))
	}
	defer s.checkInvariants()
	if len(s.table) >= s.capacity {
		s.evict()
	}
	if old, ok := s.table[key]; ok {
		s.remove(old)
	}
	n := &node{Entry: Entry{
		Key:       key,
		Value:     value,
		WrittenAt: s.now(),
		TTL:       ttl,
		Origin:    s.name,
		Meta:      meta,
	}}
	s.table[key] = n
	s.queue.push(n)
}

// Get returns the stored entry without judging staleness. Different
// callers apply different staleness policies, so that judgement stays
// with them.
func (s *Store) Get(key string) (Entry, bool) {
	n, ok := s.table[key]
	if !ok {
		return Entry{}, false
	}
	return n.Entry, true
}

// Contains reports raw membership, stale entries included.
func (s *Store) Contains(key string) bool {
	_, ok := s.table[key]
	return ok
}

// Delete removes the entry if present. Absent key is a no-op.
func (s *Store) Delete(key string) (deleted bool) {
	defer s.checkInvariants()
	n, ok := s.table[key]
	if !ok {
		return false
	}
	s.remove(n)
	return true
}

func (s *Store) Clear() {
	s.table = make(map[string]*node)
	s.queue = newQueue()
}

// Len is the raw entry count, not-yet-swept stale entries included.
func (s *Store) Len() int { return len(s.table) }

// Keys returns all keys in write order, stale entries included.
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.queue.len)
	for n := s.queue.head(); !s.queue.end(n); n = n.next {
		keys = append(keys, n.Key)
	}
	return keys
}

// SweepExpired removes every entry stale at now and returns how many
// were removed. This is the only path that removes stale entries
// proactively; Get leaves them in place.
func (s *Store) SweepExpired(now time.Time) (removed int) {
	defer s.checkInvariants()
	for n := s.queue.head(); !s.queue.end(n); {
		next := n.next
		if n.Expired(now) {
			s.remove(n)
			removed++
		}
		n = next
	}
	return removed
}

// evict removes the floor(capacity*0.2) oldest written entries, at
// least one, so an over-capacity Put always makes progress. The queue
// head is the oldest, ties already broken by insertion order.
func (s *Store) evict() {
	count := int(float64(s.capacity) * evictShare)
	if count == 0 {
		count = 1
	}
	for i := 0; i < count && !s.queue.empty(); i++ {
		n := s.queue.head()
		s.remove(n)
		if s.onEvict != nil {
			s.onEvict(n.Entry)
		}
	}
}

// remove unlinks an owned node and drops its table ref.
func (s *Store) remove(n *node) {
	s.queue.remove(n)
	delete(s.table, n.Key)
}
