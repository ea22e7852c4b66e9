// Package vertex defines the data model shared by every HOOVER component:
// vertex identifiers, partitions, feature vectors, and the packed edge-kind
// encoding used by irrmatrix and segmap.
//
// A Vertex is created on its owning PE, mutated only by that PE's update
// callback, and destroyed when the simulation finalizes. Copies held by
// other PEs (in vertexcache) are read-only snapshots and must never be
// mutated in place.
package vertex

import "fmt"

// peBits is the number of high bits of an ID reserved for the owning PE.
// The remaining 40 bits are a dense per-PE local offset.
const (
	peBits       = 24
	offsetBits   = 64 - peBits
	offsetMask   = (uint64(1) << offsetBits) - 1
	maxPE        = (uint64(1) << peBits) - 1
	maxPerPEOffs = offsetMask
)

// ID uniquely identifies a vertex across the whole job: owner PE in the high
// peBits bits, local offset within that PE in the low offsetBits bits.
type ID uint64

// NewID packs an owning PE and a local offset into a single ID.
// Panics if pe or offset do not fit in their respective bit widths; this is
// a programmer error (too many PEs or too many local vertices), not a
// runtime condition a simulation can recover from.
func NewID(pe int, offset uint64) ID {
	if pe < 0 || uint64(pe) > maxPE {
		panic(fmt.Sprintf("vertex: pe %d does not fit in %d bits", pe, peBits))
	}
	if offset > maxPerPEOffs {
		panic(fmt.Sprintf("vertex: offset %d does not fit in %d bits", offset, offsetBits))
	}
	return ID(uint64(pe)<<offsetBits | offset)
}

// OwnerPE returns the PE that owns this vertex.
func (id ID) OwnerPE() int {
	return int(uint64(id) >> offsetBits)
}

// Offset returns the vertex's local offset on its owning PE.
func (id ID) Offset() uint64 {
	return uint64(id) & offsetMask
}

func (id ID) String() string {
	return fmt.Sprintf("v(%d:%d)", id.OwnerPE(), id.Offset())
}

// Partition is a dense integer in [0, P) assigned by the user partitioning
// function from vertex state. Partitions are the unit of interest-set
// membership: edges only form between vertices whose partitions are
// declared mutually interacting by the user's might-interact callback.
type Partition int32

// NumFeatures is the fixed width of a vertex's feature vector. HOOVER's
// simulations carry a small, fixed-size double vector per vertex (position,
// velocity, SIR state, ...); variable-width payloads belong in coupling
// messages (see msgbuf), not vertex state.
const NumFeatures = 8

// Vertex is a single simulated entity: a stable identity, a partition hint
// computed by the user's partitioning function, and a fixed-width feature
// vector the user's callbacks read and (on the owning PE only) write.
type Vertex struct {
	ID        ID
	Partition Partition
	Features  [NumFeatures]float64
}

// Clone returns an independent copy of v, safe to store in vertexcache as a
// read-only snapshot without aliasing the owning PE's live vertex.
func (v *Vertex) Clone() Vertex {
	return *v
}
