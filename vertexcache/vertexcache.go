// Package vertexcache implements the remote-vertex cache from
// SPEC_FULL.md §4.4: a fixed-capacity pool of vertex copies pulled from
// other PEs, indexed by id for O(1)-ish lookup, threaded onto a per-
// partition list for the driver's edge-rebuild scan, and optionally onto a
// single "local neighbor" list — the cached vertices currently adjacent to
// some locally-owned vertex — which step 5 of the iteration driver
// recomputes every iteration (grounded on the cache half of
// hvr_vertex_cache.c via the original's data-model description; the pool +
// list-splicing idiom mirrors slab.Pool's own free-list).
package vertexcache

import (
	"errors"
	"fmt"

	"github.com/hoover-rt/hoover/segmap"
	"github.com/hoover-rt/hoover/slab"
	"github.com/hoover-rt/hoover/vertex"
)

// ErrPoolExhausted is returned by Add when the cache is at capacity. Per
// spec.md §7 this is a capacity-exhaustion condition the caller should treat
// as fatal, naming the pool and the PE.
var ErrPoolExhausted = errors.New("vertexcache: pool exhausted")

// ErrNotFound is returned by Delete for an id that isn't cached.
var ErrNotFound = errors.New("vertexcache: vertex not found")

type node struct {
	v         vertex.Vertex
	partition vertex.Partition

	partPrev, partNext slab.Handle
	lnPrev, lnNext     slab.Handle
}

// Cache is a fixed-capacity cache of remote vertex copies.
type Cache struct {
	pool      *slab.Pool[node]
	index     *segmap.Map[slab.Handle]
	partHeads map[vertex.Partition]slab.Handle
	lnHead    slab.Handle

	hits, misses int
}

// New builds a Cache with room for capacity cached vertices, indexed by an
// id-hash map whose segment pool is preallocated with idSegs segments, spread
// over idSegs buckets.
func New(capacity, idSegs int) *Cache {
	return &Cache{
		pool:      slab.New[node](capacity),
		index:     segmap.NewIdentityMap[slab.Handle](idSegs, idSegs, 1),
		partHeads: make(map[vertex.Partition]slab.Handle),
	}
}

func (c *Cache) lookupHandle(id vertex.ID) (slab.Handle, bool) {
	vl, ok := c.index.Linearize(uint64(id))
	if !ok || vl.Length == 0 {
		return slab.None, false
	}
	return vl.At(0), true
}

// Lookup returns a copy of id's cached vertex, bumping the hit/miss
// counters.
func (c *Cache) Lookup(id vertex.ID) (vertex.Vertex, bool) {
	h, ok := c.lookupHandle(id)
	if !ok {
		c.misses++
		return vertex.Vertex{}, false
	}
	c.hits++
	return c.pool.Get(h).v, true
}

// Add inserts v into the cache under partition, splicing it onto that
// partition's list head. It is not added to the local-neighbor list. Pool
// exhaustion returns ErrPoolExhausted rather than allocating past capacity.
func (c *Cache) Add(v vertex.Vertex, partition vertex.Partition) (slab.Handle, error) {
	h, ok := c.pool.Alloc()
	if !ok {
		return slab.None, fmt.Errorf("%w: capacity %d", ErrPoolExhausted, c.pool.Cap())
	}
	n := c.pool.Get(h)
	*n = node{v: v, partition: partition, partPrev: slab.None, partNext: slab.None, lnPrev: slab.None, lnNext: slab.None}

	head := c.partHeads[partition]
	if head != slab.None {
		c.pool.Get(head).partPrev = h
	}
	n.partNext = head
	c.partHeads[partition] = h

	if err := c.index.Add(uint64(v.ID), h); err != nil {
		c.pool.Free(h)
		return slab.None, err
	}
	return h, nil
}

// Delete removes id from the cache entirely: unsplices it from its
// partition list, from the local-neighbor list if present, drops it from
// the index, and frees its slot back to the pool.
func (c *Cache) Delete(id vertex.ID) error {
	h, ok := c.lookupHandle(id)
	if !ok {
		return ErrNotFound
	}
	n := c.pool.Get(h)

	if n.partPrev != slab.None {
		c.pool.Get(n.partPrev).partNext = n.partNext
	} else {
		c.partHeads[n.partition] = n.partNext
	}
	if n.partNext != slab.None {
		c.pool.Get(n.partNext).partPrev = n.partPrev
	}

	c.removeFromLocalNeighborList(h, n)

	c.index.Remove(uint64(id), h)
	c.pool.Free(h)
	return nil
}

// PartitionList returns every cached vertex currently threaded onto
// partition's list, in no particular order.
func (c *Cache) PartitionList(partition vertex.Partition) []vertex.Vertex {
	var out []vertex.Vertex
	for h := c.partHeads[partition]; h != slab.None; {
		n := c.pool.Get(h)
		out = append(out, n.v)
		h = n.partNext
	}
	return out
}

func (c *Cache) inLocalNeighborList(h slab.Handle, n *node) bool {
	return h == c.lnHead || n.lnPrev != slab.None || n.lnNext != slab.None
}

// AddToLocalNeighborList splices h onto the local-neighbor list if it is
// not already present (idempotent, per spec.md §4.4: membership is decided
// by "prev/next both being null while it is not the list head").
func (c *Cache) AddToLocalNeighborList(h slab.Handle) {
	n := c.pool.Get(h)
	if c.inLocalNeighborList(h, n) {
		return
	}
	n.lnPrev = slab.None
	n.lnNext = c.lnHead
	if c.lnHead != slab.None {
		c.pool.Get(c.lnHead).lnPrev = h
	}
	c.lnHead = h
}

// RemoveFromLocalNeighborList unsplices h if present; a no-op otherwise.
func (c *Cache) RemoveFromLocalNeighborList(h slab.Handle) {
	n := c.pool.Get(h)
	c.removeFromLocalNeighborList(h, n)
}

func (c *Cache) removeFromLocalNeighborList(h slab.Handle, n *node) {
	if !c.inLocalNeighborList(h, n) {
		return
	}
	if n.lnPrev != slab.None {
		c.pool.Get(n.lnPrev).lnNext = n.lnNext
	} else {
		c.lnHead = n.lnNext
	}
	if n.lnNext != slab.None {
		c.pool.Get(n.lnNext).lnPrev = n.lnPrev
	}
	n.lnPrev = slab.None
	n.lnNext = slab.None
}

// LocalNeighbors returns every vertex currently on the local-neighbor list —
// the input set for the update callback's neighbor enumeration at traversal
// depth 1.
func (c *Cache) LocalNeighbors() []vertex.Vertex {
	var out []vertex.Vertex
	for h := c.lnHead; h != slab.None; {
		n := c.pool.Get(h)
		out = append(out, n.v)
		h = n.lnNext
	}
	return out
}

// Handle returns the slab handle backing id's cached node, if cached. The
// driver uses this to thread cache nodes onto the local-neighbor list
// without a second id-based lookup.
func (c *Cache) Handle(id vertex.ID) (slab.Handle, bool) {
	return c.lookupHandle(id)
}

// ClearLocalNeighborList unsplices every node currently on the local-
// neighbor list, leaving it empty.
func (c *Cache) ClearLocalNeighborList() {
	for h := c.lnHead; h != slab.None; {
		n := c.pool.Get(h)
		next := n.lnNext
		c.removeFromLocalNeighborList(h, n)
		h = next
	}
}

// SetLocalNeighbors replaces the local-neighbor list's contents with
// exactly the given handles, matching step 5 of the iteration driver: "the
// local neighbors list reflects exactly those cached vertices adjacent to
// any local vertex under the just-computed matrix".
func (c *Cache) SetLocalNeighbors(handles []slab.Handle) {
	c.ClearLocalNeighborList()
	for _, h := range handles {
		c.AddToLocalNeighborList(h)
	}
}

// HitsMisses returns the cumulative Lookup hit and miss counts.
func (c *Cache) HitsMisses() (hits, misses int) {
	return c.hits, c.misses
}

// Len returns the number of vertices currently cached.
func (c *Cache) Len() int {
	return c.pool.Len()
}

// Cap returns the cache's fixed capacity.
func (c *Cache) Cap() int {
	return c.pool.Cap()
}
