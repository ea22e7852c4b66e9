// Package sparsearr implements the partition → PE-set sparse array described
// in SPEC_FULL.md §4.2: a key range chunked into fixed-size segments, each
// lazily allocated only once a key inside it receives its first value, and
// backed by a balanced BST per key rather than a dense row (grounded on
// hvr_sparse_arr.h / hvr_avl_tree.h from the original implementation).
package sparsearr

import "github.com/hoover-rt/hoover/arena"

// SegmentSize is the number of keys (partitions) covered by one segment.
const SegmentSize = 1024

type segment struct {
	roots [SegmentSize]arena.Handle
	sizes [SegmentSize]int
}

// Array maps keys in [0, capacity) to deduplicated sets of uint64 values
// (PE ids). The zero value is not usable; construct with New.
type Array struct {
	segs     []*segment
	capacity int
	nodes    *arena.Arena[avlNode]
	nsegs    int
}

// New constructs an Array accepting keys 0..capacity-1.
func New(capacity int) *Array {
	nsegs := (capacity + SegmentSize - 1) / SegmentSize
	return &Array{
		segs:     make([]*segment, nsegs),
		capacity: capacity,
		nodes:    arena.New[avlNode](),
	}
}

func (s *Array) segAndOffset(i int) (segIdx, offset int) {
	return i / SegmentSize, i % SegmentSize
}

func (s *Array) segFor(i int, create bool) *segment {
	segIdx, _ := s.segAndOffset(i)
	seg := s.segs[segIdx]
	if seg == nil && create {
		seg = &segment{}
		for k := range seg.roots {
			seg.roots[k] = arena.None
		}
		s.segs[segIdx] = seg
		s.nsegs++
	}
	return seg
}

// Insert places j under key i. A repeat insert of an already-present pair is
// a no-op.
func (s *Array) Insert(i int, j uint64) {
	seg := s.segFor(i, true)
	_, offset := s.segAndOffset(i)
	newRoot, added := avlInsert(s.nodes, seg.roots[offset], j)
	seg.roots[offset] = newRoot
	if added {
		seg.sizes[offset]++
	}
}

// Remove deletes j from key i's set, if present.
func (s *Array) Remove(i int, j uint64) {
	seg := s.segFor(i, false)
	if seg == nil {
		return
	}
	_, offset := s.segAndOffset(i)
	newRoot, removed := avlRemove(s.nodes, seg.roots[offset], j)
	seg.roots[offset] = newRoot
	if removed {
		seg.sizes[offset]--
	}
}

// Contains reports whether j is present under key i.
func (s *Array) Contains(i int, j uint64) bool {
	seg := s.segFor(i, false)
	if seg == nil {
		return false
	}
	_, offset := s.segAndOffset(i)
	return avlContains(s.nodes, seg.roots[offset], j)
}

// Size returns the number of values stored under key i.
func (s *Array) Size(i int) int {
	seg := s.segFor(i, false)
	if seg == nil {
		return 0
	}
	_, offset := s.segAndOffset(i)
	return seg.sizes[offset]
}

// RemoveValue erases j wherever it appears across every populated segment.
// Used when a PE declares it no longer owns any vertex in any partition
// (spec.md §4.2).
func (s *Array) RemoveValue(j uint64) {
	for _, seg := range s.segs {
		if seg == nil {
			continue
		}
		for offset := 0; offset < SegmentSize; offset++ {
			if seg.roots[offset] == arena.None {
				continue
			}
			newRoot, removed := avlRemove(s.nodes, seg.roots[offset], j)
			seg.roots[offset] = newRoot
			if removed {
				seg.sizes[offset]--
			}
		}
	}
}

// LinearizeRow materializes key i's set as a contiguous slice, in ascending
// PE-id order.
func (s *Array) LinearizeRow(i int) []uint64 {
	seg := s.segFor(i, false)
	if seg == nil {
		return nil
	}
	_, offset := s.segAndOffset(i)
	size := seg.sizes[offset]
	if size == 0 {
		return nil
	}
	out := make([]uint64, 0, size)
	avlWalk(s.nodes, seg.roots[offset], func(pe uint64) {
		out = append(out, pe)
	})
	return out
}

// PopulatedSegments returns the number of segments that have been lazily
// allocated so far — exposed for tests asserting the "unpopulated segments
// hold no memory" invariant.
func (s *Array) PopulatedSegments() int {
	return s.nsegs
}
