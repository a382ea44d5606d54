package tier

import "github.com/tiercache/tiercache/internal/tag"

// Pre and post conditions (invariants) for push and detach:
// * queue owns nodes between fakeHead and fakeTail.
// * {fakeHead, all owned nodes, fakeTail} are correct doubly linked list.
// * queue.len equals the number of owned nodes.
// * nodes are ordered by WrittenAt ascending. Puts always stamp the
//   store clock's current time, so pushing to the tail preserves order,
//   and equal timestamps keep insertion order.
type queue struct {
	len int

	// Fake nodes. Real nodes are between them.
	// nil <- fakeHead <-> node_0 <-> ... <-> node_(n-1) <-> fakeTail -> nil
	// Such structure prevents nil checks in code.

	// fakeHead.next is the oldest written node.
	fakeHead *node

	// fakeTail.prev is the most recently written node.
	fakeTail *node
}

// For debug output.
const fakeHeadKey = " !HEAD! "
const fakeTailKey = " !TAIL! "

func newQueue() *queue {
	q := &queue{}
	q.fakeHead, q.fakeTail = &node{}, &node{}
	q.fakeHead.Key = fakeHeadKey
	q.fakeTail.Key = fakeTailKey
	link(q.fakeHead, q.fakeTail)
	return q
}

func (q *queue) push(n *node) {
	link(q.fakeTail.prev, n)
	link(n, q.fakeTail)
	q.len++
}

func (q *queue) remove(n *node) {
	q.assertNotFake(n)
	link(n.prev, n.next)
	q.len--
	if tag.Debug {
		n.prev = nil
		n.next = nil
	}
}

func (q *queue) head() *node      { return q.fakeHead.next }
func (q *queue) tail() *node      { return q.fakeTail.prev }
func (q *queue) end(n *node) bool { return n == q.fakeTail }
func (q *queue) empty() bool      { return q.len == 0 }

type node struct {
	Entry
	prev *node
	next *node
}

func (q *queue) assertNotFake(n *node) {
	if n == q.fakeHead || n == q.fakeTail {
		panic("node pointer out of range")
	}
}

func link(a, b *node) { a.next, b.prev = b, a }
