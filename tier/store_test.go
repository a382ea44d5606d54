package tier

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tiercache/tiercache/testutil"
)

var _ = Describe("Store", func() {
	var (
		clock    *testutil.Clock
		capacity int
		evicted  []string
		s        *Store
	)
	BeforeEach(func() {
		resetTestKeys()
		clock = testutil.NewClock()
		capacity = 10
		evicted = nil
	})
	JustBeforeEach(func() {
		s = New(Config{
			Name:     "fast",
			Capacity: capacity,
			Now:      clock.Now,
			OnEvict:  func(e Entry) { evicted = append(evicted, e.Key) },
		})
	})
	AfterEach(func() { s.ExpectInvariantsOk() })

	Key := func(i int) string { return fmt.Sprintf("test_key_%v", i) }
	PutN := func(n int) {
		for i := 0; i < n; i++ {
			s.Put(testKey(), i, testTTL, nil)
			clock.Advance(time.Millisecond)
		}
	}

	Context("put and get", func() {
		It("round trip", func() {
			s.Put("k", "v", testTTL, nil)
			e, ok := s.Get("k")
			Expect(ok).To(BeTrue())
			Expect(e.Value).To(Equal("v"))
			Expect(e.TTL).To(Equal(testTTL))
			Expect(e.WrittenAt).To(Equal(clock.Now()))
			Expect(e.Origin).To(Equal("fast"))
		})

		It("miss on absent key", func() {
			_, ok := s.Get("nope")
			Expect(ok).To(BeFalse())
		})

		It("keeps caller metadata opaque", func() {
			meta := map[string]any{"source": "ledger"}
			s.Put("k", 1, testTTL, meta)
			e, _ := s.Get("k")
			Expect(e.Meta).To(Equal(meta))
		})

		It("overwrite replaces whole entry and refreshes write time", func() {
			s.Put("k", 1, testTTL, nil)
			clock.Advance(time.Second)
			s.Put("k", 2, 2*testTTL, nil)
			Expect(s.Len()).To(Equal(1))
			e, _ := s.Get("k")
			Expect(e.Value).To(Equal(2))
			Expect(e.TTL).To(Equal(2 * testTTL))
			Expect(e.WrittenAt).To(Equal(clock.Now()))
		})

		It("overwrite moves entry to the back of eviction order", func() {
			s.Put("a", 1, testTTL, nil)
			clock.Advance(time.Millisecond)
			s.Put("b", 2, testTTL, nil)
			clock.Advance(time.Millisecond)
			s.Put("a", 3, testTTL, nil)
			Expect(s.Keys()).To(Equal([]string{"b", "a"}))
		})

		It("returns stale entries as stored", func() {
			// Staleness judgement belongs to the caller; different
			// operations apply different policies.
			s.Put("k", 1, time.Millisecond, nil)
			clock.Advance(time.Second)
			e, ok := s.Get("k")
			Expect(ok).To(BeTrue())
			Expect(e.Expired(clock.Now())).To(BeTrue())
		})

		It("panics on non-positive ttl", func() {
			Expect(func() { s.Put("k", 1, 0, nil) }).To(Panic())
			Expect(func() { s.Put("k", 1, -time.Second, nil) }).To(Panic())
		})
	})

	Context("delete and clear", func() {
		It("delete found", func() {
			s.Put("k", 1, testTTL, nil)
			Expect(s.Delete("k")).To(BeTrue())
			Expect(s.Len()).To(BeZero())
			Expect(s.Contains("k")).To(BeFalse())
		})

		It("delete absent is no-op", func() {
			s.Put("k", 1, testTTL, nil)
			Expect(s.Delete("other")).To(BeFalse())
			Expect(s.Len()).To(Equal(1))
		})

		It("clear empties the store", func() {
			PutN(5)
			s.Clear()
			Expect(s.Len()).To(BeZero())
			Expect(s.Keys()).To(BeEmpty())
		})
	})

	Context("len and keys", func() {
		It("keys in write order, stale included", func() {
			s.Put("a", 1, time.Millisecond, nil)
			clock.Advance(time.Millisecond)
			s.Put("b", 2, testTTL, nil)
			clock.Advance(time.Second) // "a" is stale now.
			Expect(s.Len()).To(Equal(2))
			Expect(s.Keys()).To(Equal([]string{"a", "b"}))
		})
	})

	Context("eviction", func() {
		It("insert over capacity drops the two oldest of ten", func() {
			PutN(10)
			Expect(s.Len()).To(Equal(10))

			s.Put(testKey(), 10, testTTL, nil)
			Expect(s.Len()).To(Equal(9))
			Expect(evicted).To(Equal([]string{Key(0), Key(1)}))
			for i := 2; i <= 10; i++ {
				Expect(s.Contains(Key(i))).To(BeTrue(), Key(i))
			}
		})

		Context("small capacity", func() {
			BeforeEach(func() { capacity = 4 }) // floor(4 * 0.2) == 0
			It("evicts at least one when the share rounds to zero", func() {
				PutN(4)
				s.Put(testKey(), 4, testTTL, nil)
				Expect(s.Len()).To(Equal(4))
				Expect(evicted).To(Equal([]string{Key(0)}))
			})
		})

		It("ties in write time evict in insertion order", func() {
			// No clock advance between puts: all entries share WrittenAt.
			for i := 0; i < 10; i++ {
				s.Put(testKey(), i, testTTL, nil)
			}
			s.Put(testKey(), 10, testTTL, nil)
			Expect(evicted).To(Equal([]string{Key(0), Key(1)}))
		})

		Context("at capacity", func() {
			BeforeEach(func() { capacity = 2 })
			It("overwrite still runs the eviction pass", func() {
				s.Put("a", 1, testTTL, nil)
				clock.Advance(time.Millisecond)
				s.Put("b", 2, testTTL, nil)
				clock.Advance(time.Millisecond)
				s.Put("a", 3, testTTL, nil)
				Expect(evicted).To(Equal([]string{"a"}))
				Expect(s.Keys()).To(Equal([]string{"b", "a"}))
			})
		})
	})

	Context("sweep", func() {
		It("removes exactly the stale entries", func() {
			s.Put("old1", 1, 50*time.Millisecond, nil)
			s.Put("old2", 2, 50*time.Millisecond, nil)
			s.Put("live", 3, time.Hour, nil)
			clock.Advance(60 * time.Millisecond)

			Expect(s.SweepExpired(clock.Now())).To(Equal(2))
			Expect(s.Len()).To(Equal(1))
			Expect(s.Keys()).To(Equal([]string{"live"}))
		})

		It("age exactly ttl is still live", func() {
			s.Put("k", 1, 50*time.Millisecond, nil)
			clock.Advance(50 * time.Millisecond)
			Expect(s.SweepExpired(clock.Now())).To(BeZero())
			Expect(s.Contains("k")).To(BeTrue())
		})

		It("nothing to sweep", func() {
			PutN(3)
			Expect(s.SweepExpired(clock.Now())).To(BeZero())
			Expect(s.Len()).To(Equal(3))
		})
	})

	It("panics on non-positive capacity", func() {
		Expect(func() { New(Config{Name: "bad", Capacity: 0}) }).To(Panic())
	})
})
