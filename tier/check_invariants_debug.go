//go:build debug
// +build debug

// Gomega should not be a dependency in non-debug builds.

package tier

import (
	"log"

	"github.com/pkg/errors"

	. "github.com/onsi/gomega"
)

var _ = func() (_ struct{}) {
	RegisterFailHandler(gomegaFailHandler)
	return
}()

func gomegaFailHandler(message string, callerSkip ...int) {
	log.Fatal("FATAL: invariants are broken: ", errors.New(message))
}

func (q *queue) checkInvariants() {
	Expect(q.fakeHead.prev).To(BeNil())
	Expect(q.fakeTail.next).To(BeNil())
	var actualLen int
	prevWrite := q.fakeHead.WrittenAt
	for n := q.head(); !q.end(n); n = n.next {
		actualLen++
		Expect(n.prev.next).To(BeIdenticalTo(n))
		Expect(n.WrittenAt.Before(prevWrite)).To(BeFalse(), "write order broken at %q", n.Key)
		prevWrite = n.WrittenAt
	}
	Expect(q.tail().next).To(BeIdenticalTo(q.fakeTail))
	Expect(actualLen).To(Equal(q.len))
}

func (s *Store) checkInvariants() {
	s.queue.checkInvariants()
	var items int
	for n := s.queue.head(); !s.queue.end(n); n = n.next {
		items++
		Expect(n.TTL > 0).To(BeTrue(), "%q stored with non-positive ttl", n.Key)
		Expect(n.Origin).To(Equal(s.name))
		tn, ok := s.table[n.Key]
		Expect(ok).To(BeTrue(), n.Key, "no table ref to entry")
		Expect(tn).To(BeIdenticalTo(n), "table refs another node")
	}
	Expect(items).To(Equal(len(s.table)), "queue and table disagree")
}
