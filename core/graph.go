// Package core implements a small directed/undirected graph over HOOVER's own
// vertex.ID and vertex.EdgeInfo types, used by driver.LocalGraph to snapshot a
// PE's current halo view and by bfs for connectivity queries over it.
// Adjacency is backed by segmap's EDGE_INFO flavor (segmap.NewEdgeInfoMap),
// the same segmented-map structure the vertex cache uses (in its identity
// flavor) for its id index; irrmatrix keeps plain per-vertex slices instead.
// Grounded on lvlath's core.Graph for the
// locking shape (one mutex for vertex membership, a second for adjacency).
package core

import (
	"errors"
	"sync"

	"github.com/hoover-rt/hoover/segmap"
	"github.com/hoover-rt/hoover/vertex"
)

// ErrVertexNotFound is returned by AddEdge and NeighborIDs for an id this
// Graph has never seen via AddVertex.
var ErrVertexNotFound = errors.New("core: vertex not found")

// Graph is a vertex.ID-keyed adjacency snapshot. The zero value is not
// usable; construct with NewGraph.
type Graph struct {
	muVert sync.RWMutex
	muAdj  sync.RWMutex

	vertices map[vertex.ID]struct{}
	adj      *segmap.Map[vertex.EdgeInfo]
}

// NewGraph builds an empty Graph whose adjacency map is sized for roughly
// nVertices entries: nBuckets and segPoolCapacity are sized generously enough
// that a PE's local halo view (one row per local vertex, a handful of
// neighbors each) fits without hitting segmap.ErrSegmentPoolExhausted.
func NewGraph(nVertices int) *Graph {
	nBuckets := nVertices*2 + 8
	segPoolCapacity := nVertices*4 + 8
	const initSpillCap = 4
	return &Graph{
		vertices: make(map[vertex.ID]struct{}, nVertices),
		adj:      segmap.NewEdgeInfoMap(nBuckets, segPoolCapacity, initSpillCap),
	}
}

// AddVertex registers id, if not already present. Idempotent.
func (g *Graph) AddVertex(id vertex.ID) {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.vertices[id] = struct{}{}
}

// HasVertex reports whether id has been registered via AddVertex.
func (g *Graph) HasVertex(id vertex.ID) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// AddEdge records that from and to are adjacent with the given kind, mirroring
// vertex.EdgeKind's semantics: Bidirectional threads both directions,
// DirectedOut threads only from->to, DirectedIn only to->from. Both
// endpoints must already be registered via AddVertex.
func (g *Graph) AddEdge(from, to vertex.ID, kind vertex.EdgeKind) error {
	if !g.HasVertex(from) {
		return ErrVertexNotFound
	}
	if !g.HasVertex(to) {
		return ErrVertexNotFound
	}

	g.muAdj.Lock()
	defer g.muAdj.Unlock()

	switch kind {
	case vertex.Bidirectional:
		if err := g.adj.Add(uint64(from), vertex.PackEdgeInfo(to, kind)); err != nil {
			return err
		}
		return g.adj.Add(uint64(to), vertex.PackEdgeInfo(from, kind))
	case vertex.DirectedOut:
		return g.adj.Add(uint64(from), vertex.PackEdgeInfo(to, kind))
	case vertex.DirectedIn:
		return g.adj.Add(uint64(to), vertex.PackEdgeInfo(from, kind))
	default:
		return nil
	}
}

// NeighborIDs returns every vertex id adjacent to id, in the order the
// underlying segmap entry holds them (inline values first, then spill).
func (g *Graph) NeighborIDs(id vertex.ID) ([]vertex.ID, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muAdj.RLock()
	defer g.muAdj.RUnlock()

	vl, ok := g.adj.Linearize(uint64(id))
	if !ok {
		return nil, nil
	}
	out := make([]vertex.ID, vl.Length)
	for i := range out {
		out[i] = vl.At(i).Vertex()
	}
	return out, nil
}

// VertexCount returns the number of vertices registered via AddVertex.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}
