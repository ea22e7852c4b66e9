// Package bfs implements breadth-first traversal over a core.Graph, used by
// driver.LocalGraph's callers to check connectivity within a PE's current
// halo view. Queue/visited/parent bookkeeping follows lvlath's bfs package;
// the generic enqueue/dequeue/visit hooks and filter/depth options it offers
// are dropped here since HOOVER's reachability queries over vertex.ID need
// none of them.
package bfs

import (
	"context"
	"errors"

	"github.com/hoover-rt/hoover/core"
	"github.com/hoover-rt/hoover/vertex"
)

// ErrGraphNil is returned when BFS is called with a nil graph.
var ErrGraphNil = errors.New("bfs: graph is nil")

// ErrStartVertexNotFound is returned when the start vertex is absent from g.
var ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

// Result holds the outcome of one BFS run: visitation order, per-vertex
// depth, and the parent pointer needed to reconstruct a path back to the
// start vertex.
type Result struct {
	Order  []vertex.ID
	Depth  map[vertex.ID]int
	Parent map[vertex.ID]vertex.ID
}

// PathTo reconstructs the path from the BFS start vertex to dest, walking
// Parent pointers backward. Returns an error if dest was never visited.
func (r *Result) PathTo(dest vertex.ID) ([]vertex.ID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, errors.New("bfs: destination not reached")
	}
	path := []vertex.ID{dest}
	cur := dest
	for {
		parent, hasParent := r.Parent[cur]
		if !hasParent {
			break
		}
		path = append(path, parent)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type queueItem struct {
	id        vertex.ID
	depth     int
	parent    vertex.ID
	hasParent bool
}

// BFS walks g breadth-first from start, honoring ctx cancellation between
// dequeues.
func BFS(ctx context.Context, g *core.Graph, start vertex.ID) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	res := &Result{
		Depth:  make(map[vertex.ID]int),
		Parent: make(map[vertex.ID]vertex.ID),
	}
	visited := map[vertex.ID]bool{start: true}
	queue := []queueItem{{id: start, depth: 0}}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		res.Order = append(res.Order, item.id)
		res.Depth[item.id] = item.depth
		if item.hasParent {
			res.Parent[item.id] = item.parent
		}

		neighbors, err := g.NeighborIDs(item.id)
		if err != nil {
			return nil, err
		}
		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, queueItem{id: n, depth: item.depth + 1, parent: item.id, hasParent: true})
		}
	}
	return res, nil
}
