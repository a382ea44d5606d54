package tier

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

type MockCallback struct {
	mock.Mock
}

func (m *MockCallback) Evict(e Entry) {
	By("Evict " + e.Key)
	m.Called(e.Key)
}

var _ = Describe("eviction callback", func() {
	var (
		cb *MockCallback
		s  *Store
	)
	BeforeEach(func() {
		cb = &MockCallback{}
		s = New(Config{Name: "fast", Capacity: 10, OnEvict: cb.Evict})
	})

	It("fires once per evicted entry, oldest first", func() {
		cb.On("Evict", "k0").Once()
		cb.On("Evict", "k1").Once()
		for i := 0; i < 11; i++ {
			s.Put(fmt.Sprintf("k%d", i), i, time.Minute, nil)
		}
		cb.AssertExpectations(GinkgoT())
	})

	It("does not fire on delete or sweep", func() {
		s.Put("k", 1, time.Millisecond, nil)
		s.Delete("k")
		s.Put("k2", 2, time.Millisecond, nil)
		s.SweepExpired(time.Now().Add(time.Second))
		cb.AssertNotCalled(GinkgoT(), "Evict", mock.Anything)
		Expect(s.Len()).To(BeZero())
	})
})
