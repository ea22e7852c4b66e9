// Package slab implements a fixed-capacity pooled allocator: a preallocated
// slice of slots handed out by integer handle and returned to a free list on
// release. In this module it backs vertexcache's node pool; segmap keeps its
// own preallocated segment free list and sparsearr's AVL nodes live in an
// arena.Arena — see Design Notes in SPEC_FULL.md ("Manual region
// allocators", "Cyclic and multi-index linkage").
//
// A slab never grows past its configured capacity: exhaustion is reported to
// the caller so the caller can produce the diagnostic spec.md §7 requires
// ("fatal, naming the pool and the PE") — the slab package itself never logs
// or aborts the process.
package slab

import "fmt"

// Handle references a slot in a Pool. The zero Handle is reserved to mean
// "no slot" so callers can use it as a sentinel in linked structures without
// an extra boolean.
type Handle uint32

// None is the sentinel "not a valid handle" value.
const None Handle = 0

// Pool is a generic fixed-capacity slab allocator over values of type T.
// Handle 0 is never issued by Alloc, so None can be used as a linkage
// sentinel by callers (see vertexcache's four-location invariant).
type Pool[T any] struct {
	slots    []T
	freeList []Handle
	capacity int
	live     int
}

// New creates a Pool preallocated for exactly capacity live slots.
func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{
		// slots[0] is wasted so Handle 0 can mean "none"; this trades one
		// slot of memory for a sentinel that needs no separate bitset.
		slots:    make([]T, capacity+1),
		freeList: make([]Handle, capacity),
		capacity: capacity,
	}
	for i := 0; i < capacity; i++ {
		p.freeList[i] = Handle(capacity - i)
	}
	return p
}

// Cap returns the slab's fixed capacity.
func (p *Pool[T]) Cap() int { return p.capacity }

// Len returns the number of currently live (allocated) slots.
func (p *Pool[T]) Len() int { return p.live }

// Alloc reserves a slot and returns its handle. ok is false when the pool is
// exhausted; callers must treat this as the capacity-exhaustion fatal error
// spec.md §7 describes, not retry or silently drop data.
func (p *Pool[T]) Alloc() (Handle, bool) {
	if len(p.freeList) == 0 {
		return None, false
	}
	n := len(p.freeList) - 1
	h := p.freeList[n]
	p.freeList = p.freeList[:n]
	p.live++
	var zero T
	p.slots[h] = zero
	return h, true
}

// Free returns h's slot to the pool. Freeing None or a handle outside the
// pool's range is a programmer error and panics; an in-range handle that is
// not currently allocated (a double-free) is not detected, so callers
// (vertexcache) are responsible for only freeing handles they currently own.
func (p *Pool[T]) Free(h Handle) {
	if h == None || int(h) > p.capacity {
		panic(fmt.Sprintf("slab: invalid handle %d", h))
	}
	p.freeList = append(p.freeList, h)
	p.live--
}

// Get returns a pointer to h's slot for in-place mutation.
func (p *Pool[T]) Get(h Handle) *T {
	if h == None {
		panic("slab: dereferenced None handle")
	}
	return &p.slots[h]
}
