// Package irrmatrix implements the per-vertex edge list from SPEC_FULL.md
// §4.5: each vertex owns a growable slice of (neighbor, kind) pairs rather
// than a dense row, since real HOOVER graphs are sparse relative to their
// vertex count (grounded on hvr_irregular_matrix.c).
package irrmatrix

import "github.com/hoover-rt/hoover/vertex"

// Matrix holds one edge list per vertex slot, indexed 0..nvertices-1 —
// vertex.ID.Offset(), not the packed ID, since a matrix is scoped to one
// PE's locally-owned vertices.
type Matrix struct {
	edges [][]vertex.EdgeInfo
}

// New builds a Matrix with nvertices empty edge lists.
func New(nvertices int) *Matrix {
	return &Matrix{edges: make([][]vertex.EdgeInfo, nvertices)}
}

func growCapacity(curr int) int {
	switch {
	case curr == 0:
		return 2
	case curr <= 128:
		return curr * 2
	default:
		return curr + 16
	}
}

// Set rewrites or inserts the edge from vertex i to neighbor j. kind ==
// vertex.NoEdge deletes the entry (no-op if j was never i's neighbor).
func (m *Matrix) Set(i int, j vertex.ID, kind vertex.EdgeKind) {
	row := m.edges[i]
	for idx, e := range row {
		if e.Vertex() == j {
			if kind == vertex.NoEdge {
				last := len(row) - 1
				row[idx] = row[last]
				m.edges[i] = row[:last]
			} else {
				row[idx] = vertex.PackEdgeInfo(j, kind)
			}
			return
		}
	}
	if kind == vertex.NoEdge {
		return
	}
	if len(row) == cap(row) {
		grown := make([]vertex.EdgeInfo, len(row), growCapacity(cap(row)))
		copy(grown, row)
		row = grown
	}
	m.edges[i] = append(row, vertex.PackEdgeInfo(j, kind))
}

// Get returns the edge kind from i to j, or vertex.NoEdge if none exists.
func (m *Matrix) Get(i int, j vertex.ID) vertex.EdgeKind {
	for _, e := range m.edges[i] {
		if e.Vertex() == j {
			return e.Kind()
		}
	}
	return vertex.NoEdge
}

// Linearize copies i's edge list into a fresh slice in arbitrary order. The
// original API exposed caller-provided output arrays with an asserted
// capacity; Go callers get a freshly sized slice instead since there is no
// equivalent benefit to a caller-owned buffer here.
func (m *Matrix) Linearize(i int) []vertex.EdgeInfo {
	row := m.edges[i]
	out := make([]vertex.EdgeInfo, len(row))
	copy(out, row)
	return out
}

// Degree returns the number of edges currently set for vertex i.
func (m *Matrix) Degree(i int) int {
	return len(m.edges[i])
}

// UsageStats reports the edge-list footprint across all vertices
// (hvr_irr_matrix_usage): used/capacity counts and which vertex carries the
// most edges, useful for the capacity-exhaustion diagnostics callers may
// want even though irrmatrix itself never hard-fails.
type UsageStats struct {
	UsedEdges      int
	CapacityEdges  int
	MaxDegree      int
	MaxDegreeIndex int
}

// Usage computes UsageStats by scanning every vertex's edge list.
func (m *Matrix) Usage() UsageStats {
	var s UsageStats
	for i, row := range m.edges {
		s.UsedEdges += len(row)
		s.CapacityEdges += cap(row)
		if len(row) > s.MaxDegree {
			s.MaxDegree = len(row)
			s.MaxDegreeIndex = i
		}
	}
	return s
}
