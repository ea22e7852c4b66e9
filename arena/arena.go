// Package arena implements a bump-allocated, chunked memory region with an
// out-of-order free list, reclaimed wholesale on Reset. It grounds the
// "Manual region allocators" design note in SPEC_FULL.md: several HOOVER
// components (msgbuf's buffered messages, sparsearr's AVL nodes) use a single
// pooled region instead of per-node allocation to avoid general-purpose
// allocator pressure under high churn.
//
// Unlike slab.Pool, an Arena has no fixed capacity: it grows by appending a
// new chunk when the current one is full, trading the "fatal on exhaustion"
// contract (appropriate for the hard-capacity cache and map pools) for the
// "never fails, reclaimed wholesale" contract the original message-buffer
// allocator used.
package arena

// chunkSize is the number of elements per appended chunk. Doubling chunk
// size on growth would save allocations at very large scales, but a fixed
// size keeps chunk lifetimes easy to reason about when elements are freed
// out of order and chunks never shrink until Reset.
const chunkSize = 256

// Handle references a slot inside an Arena.
type Handle uint32

// None is the sentinel "not a valid handle" value.
const None Handle = 0

// Arena is a generic bump/free-list allocator over values of type T.
type Arena[T any] struct {
	chunks   [][]T
	freeList []Handle
	next     Handle // next never-yet-issued handle (starts at 1; 0 is None)
}

// New creates an empty Arena. The first chunk is allocated lazily on first
// Alloc so a Driver that never emits coupling messages never pays for one.
func New[T any]() *Arena[T] {
	return &Arena[T]{next: 1}
}

// Alloc returns a handle to a fresh zero-valued T, reusing a freed slot
// before bumping into new space.
func (a *Arena[T]) Alloc() Handle {
	if n := len(a.freeList); n > 0 {
		h := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		var zero T
		*a.slot(h) = zero
		return h
	}

	h := a.next
	a.next++
	chunkIdx := int(h-1) / chunkSize
	for chunkIdx >= len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, chunkSize))
	}
	return h
}

// Free releases h's slot back to the free list for reuse. Frees may happen
// in any order relative to Alloc; the arena itself is only ever reclaimed in
// bulk via Reset.
func (a *Arena[T]) Free(h Handle) {
	if h == None {
		panic("arena: freed None handle")
	}
	a.freeList = append(a.freeList, h)
}

// Get returns a pointer to h's slot for in-place read or mutation.
func (a *Arena[T]) Get(h Handle) *T {
	if h == None {
		panic("arena: dereferenced None handle")
	}
	return a.slot(h)
}

func (a *Arena[T]) slot(h Handle) *T {
	idx := int(h - 1)
	return &a.chunks[idx/chunkSize][idx%chunkSize]
}

// Reset reclaims the entire arena at once: all chunks are dropped and
// future Alloc calls start from a clean slate. Any handle issued before
// Reset is invalid afterward.
func (a *Arena[T]) Reset() {
	a.chunks = nil
	a.freeList = nil
	a.next = 1
}
