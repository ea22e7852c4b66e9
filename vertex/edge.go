package vertex

import "fmt"

// EdgeKind classifies the relationship between two vertices, as decided by
// the user's should-have-edge callback.
type EdgeKind uint8

const (
	// NoEdge means the two vertices are not adjacent. Setting an edge to
	// NoEdge deletes it from irrmatrix.
	NoEdge EdgeKind = iota
	// DirectedIn means the neighbor points at this vertex only.
	DirectedIn
	// DirectedOut means this vertex points at the neighbor only.
	DirectedOut
	// Bidirectional means the edge holds in both directions.
	Bidirectional
)

func (k EdgeKind) String() string {
	switch k {
	case NoEdge:
		return "NO_EDGE"
	case DirectedIn:
		return "DIRECTED_IN"
	case DirectedOut:
		return "DIRECTED_OUT"
	case Bidirectional:
		return "BIDIRECTIONAL"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// kindShift places EdgeKind in the top byte of a packed EdgeInfo word,
// leaving 56 bits for the neighbor id. An ID keeps its owner PE in bits
// 40-63 (see peBits/offsetBits), so only ids whose owner PE is below 1<<16
// fit; an id with a larger owner PE cannot be packed.
const (
	kindShift    = 56
	neighborMask = (uint64(1) << kindShift) - 1
)

// EdgeInfo packs a neighbor ID and an EdgeKind into a single 64-bit word,
// exactly mirroring the original implementation's edge_info encoding. The
// segmented map's EDGE_INFO flavor deduplicates on the neighbor-id subfield
// only, so two EdgeInfo values compare equal (Vertex match) independent of
// Kind; this is intentional — see segmap.NewEdgeInfoMap.
type EdgeInfo uint64

// PackEdgeInfo constructs an EdgeInfo from a neighbor id and edge kind.
// Panics if neighbor does not fit in the 56 low bits, which is the case for
// any ID whose owner PE is 1<<16 or above.
func PackEdgeInfo(neighbor ID, kind EdgeKind) EdgeInfo {
	if uint64(neighbor)&^neighborMask != 0 {
		panic(fmt.Sprintf("vertex: neighbor id %d does not fit in %d bits", neighbor, kindShift))
	}
	return EdgeInfo(uint64(neighbor) | uint64(kind)<<kindShift)
}

// Vertex returns the packed neighbor id.
func (e EdgeInfo) Vertex() ID {
	return ID(uint64(e) & neighborMask)
}

// Kind returns the packed edge kind.
func (e EdgeInfo) Kind() EdgeKind {
	return EdgeKind(uint64(e) >> kindShift)
}
