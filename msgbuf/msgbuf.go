// Package msgbuf implements the per-vertex coupling-message mailboxes from
// SPEC_FULL.md §4.6: a LIFO singly-linked list per vertex, backed by a
// single arena so repeated insert/poll churn across an iteration doesn't
// pressure the general-purpose allocator (grounded on the buffered-message
// allocator in hvr_buffered_msgs.cpp, translated from its region/mspace
// allocator to arena.Arena).
package msgbuf

import "github.com/hoover-rt/hoover/arena"

type node[T any] struct {
	payload T
	next    arena.Handle
}

// Buffers holds one LIFO mailbox per vertex, keyed by local vertex index
// (vertex.ID.Offset(), not the packed id — a buffer is scoped to one PE's
// locally-owned vertices, same as irrmatrix).
type Buffers[T any] struct {
	heads []arena.Handle
	pool  *arena.Arena[node[T]]
}

// New builds Buffers for nvertices local vertex slots.
func New[T any](nvertices int) *Buffers[T] {
	heads := make([]arena.Handle, nvertices)
	for i := range heads {
		heads[i] = arena.None
	}
	return &Buffers[T]{heads: heads, pool: arena.New[node[T]]()}
}

// Insert pushes payload onto vertex i's mailbox.
func (b *Buffers[T]) Insert(i int, payload T) {
	h := b.pool.Alloc()
	*b.pool.Get(h) = node[T]{payload: payload, next: b.heads[i]}
	b.heads[i] = h
}

// Poll removes and returns the most recently inserted payload for vertex i.
// ok is false if the mailbox is empty. Delivery order across distinct
// Insert calls is not meaningful — only that every inserted payload is
// eventually polled exactly once (spec.md §4.6: "the user callback must
// treat them as a multiset").
func (b *Buffers[T]) Poll(i int) (payload T, ok bool) {
	h := b.heads[i]
	if h == arena.None {
		return payload, false
	}
	n := b.pool.Get(h)
	payload = n.payload
	b.heads[i] = n.next
	b.pool.Free(h)
	return payload, true
}

// Len reports how many messages are currently queued for vertex i.
func (b *Buffers[T]) Len(i int) int {
	n := 0
	for h := b.heads[i]; h != arena.None; {
		n++
		h = b.pool.Get(h).next
	}
	return n
}

// Reset drops every queued message across every vertex at once, reusing the
// underlying arena's wholesale reclamation rather than polling each vertex
// dry — used between simulation runs in tests.
func (b *Buffers[T]) Reset() {
	for i := range b.heads {
		b.heads[i] = arena.None
	}
	b.pool.Reset()
}
