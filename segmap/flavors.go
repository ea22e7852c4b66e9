package segmap

import "github.com/hoover-rt/hoover/vertex"

// NewEdgeInfoMap builds the EDGE_INFO flavor of segmap.Map: two EdgeInfo
// values are equal iff their packed neighbor-id subfields match, regardless
// of edge kind (spec.md §4.1). core.Graph uses this to hold per-vertex
// adjacency; irrmatrix and the driver's edge-rebuild step do not use segmap.
func NewEdgeInfoMap(nBuckets, segPoolCapacity, initSpillCap int) *Map[vertex.EdgeInfo] {
	return New(nBuckets, segPoolCapacity, initSpillCap, func(a, b vertex.EdgeInfo) bool {
		return a.Vertex() == b.Vertex()
	})
}

// NewIdentityMap builds a map whose values are compared by plain equality —
// the Go encoding of the original's pointer-identity comparison for
// CACHED_VERT_INFO and INTERACT_INFO, now that cache nodes and interaction
// records are referenced by handle rather than pointer (Design Notes:
// "Cyclic and multi-index linkage").
func NewIdentityMap[V comparable](nBuckets, segPoolCapacity, initSpillCap int) *Map[V] {
	return New(nBuckets, segPoolCapacity, initSpillCap, func(a, b V) bool { return a == b })
}
