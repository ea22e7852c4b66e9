package sparsearr

import "github.com/hoover-rt/hoover/arena"

// avlNode is a node of a per-offset AVL tree keyed on a PE id. Children are
// referenced by arena.Handle rather than pointer, per the handle-based
// linkage used across the module (slab.Pool, arena.Arena, segmap's segment
// indices) instead of the original's raw hvr_avl_node pointers.
type avlNode struct {
	pe     uint64
	height int8
	left   arena.Handle
	right  arena.Handle
}

func nodeHeight(a *arena.Arena[avlNode], h arena.Handle) int8 {
	if h == arena.None {
		return 0
	}
	return a.Get(h).height
}

func balanceFactor(a *arena.Arena[avlNode], h arena.Handle) int {
	if h == arena.None {
		return 0
	}
	n := a.Get(h)
	return int(nodeHeight(a, n.left)) - int(nodeHeight(a, n.right))
}

func fixHeight(a *arena.Arena[avlNode], h arena.Handle) {
	n := a.Get(h)
	lh, rh := nodeHeight(a, n.left), nodeHeight(a, n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
}

func rotateRight(a *arena.Arena[avlNode], h arena.Handle) arena.Handle {
	n := a.Get(h)
	l := n.left
	ln := a.Get(l)
	n.left = ln.right
	ln.right = h
	fixHeight(a, h)
	fixHeight(a, l)
	return l
}

func rotateLeft(a *arena.Arena[avlNode], h arena.Handle) arena.Handle {
	n := a.Get(h)
	r := n.right
	rn := a.Get(r)
	n.right = rn.left
	rn.left = h
	fixHeight(a, h)
	fixHeight(a, r)
	return r
}

func rebalance(a *arena.Arena[avlNode], h arena.Handle) arena.Handle {
	fixHeight(a, h)
	bf := balanceFactor(a, h)
	n := a.Get(h)
	if bf > 1 {
		if balanceFactor(a, n.left) < 0 {
			n.left = rotateLeft(a, n.left)
		}
		return rotateRight(a, h)
	}
	if bf < -1 {
		if balanceFactor(a, n.right) > 0 {
			n.right = rotateRight(a, n.right)
		}
		return rotateLeft(a, h)
	}
	return h
}

// avlInsert inserts pe into the tree rooted at h, returning the new root and
// whether pe was actually added (false if it was already present).
func avlInsert(a *arena.Arena[avlNode], h arena.Handle, pe uint64) (arena.Handle, bool) {
	if h == arena.None {
		nh := a.Alloc()
		*a.Get(nh) = avlNode{pe: pe, height: 1, left: arena.None, right: arena.None}
		return nh, true
	}
	n := a.Get(h)
	switch {
	case pe == n.pe:
		return h, false
	case pe < n.pe:
		left, added := avlInsert(a, n.left, pe)
		n.left = left
		if !added {
			return h, false
		}
	default:
		right, added := avlInsert(a, n.right, pe)
		n.right = right
		if !added {
			return h, false
		}
	}
	return rebalance(a, h), true
}

func avlMin(a *arena.Arena[avlNode], h arena.Handle) uint64 {
	n := a.Get(h)
	for n.left != arena.None {
		h = n.left
		n = a.Get(h)
	}
	return n.pe
}

// avlRemove deletes pe from the tree rooted at h, returning the new root and
// whether pe was present.
func avlRemove(a *arena.Arena[avlNode], h arena.Handle, pe uint64) (arena.Handle, bool) {
	if h == arena.None {
		return arena.None, false
	}
	n := a.Get(h)
	switch {
	case pe < n.pe:
		left, removed := avlRemove(a, n.left, pe)
		n.left = left
		if !removed {
			return h, false
		}
	case pe > n.pe:
		right, removed := avlRemove(a, n.right, pe)
		n.right = right
		if !removed {
			return h, false
		}
	default:
		left, right := n.left, n.right
		a.Free(h)
		if right == arena.None {
			return left, true
		}
		succPE := avlMin(a, right)
		newRight, _ := avlRemove(a, right, succPE)
		nh := a.Alloc()
		*a.Get(nh) = avlNode{pe: succPE, left: left, right: newRight}
		return rebalance(a, nh), true
	}
	return rebalance(a, h), true
}

func avlContains(a *arena.Arena[avlNode], h arena.Handle, pe uint64) bool {
	for h != arena.None {
		n := a.Get(h)
		switch {
		case pe == n.pe:
			return true
		case pe < n.pe:
			h = n.left
		default:
			h = n.right
		}
	}
	return false
}

func avlWalk(a *arena.Arena[avlNode], h arena.Handle, visit func(pe uint64)) {
	if h == arena.None {
		return
	}
	n := a.Get(h)
	avlWalk(a, n.left, visit)
	visit(n.pe)
	avlWalk(a, n.right, visit)
}
