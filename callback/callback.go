// Package callback groups the six user-supplied simulation callbacks
// (spec.md §6) into a single value a driver.Driver holds by composition,
// rather than package-level function variables — the Go encoding of
// SPEC_FULL.md's "Dynamic callback dispatch" design note.
package callback

import "github.com/hoover-rt/hoover/vertex"

// Neighbor is one candidate edge endpoint presented to UpdateMetadata: the
// neighbor's current snapshot plus the edge kind the matrix currently
// records for it.
type Neighbor struct {
	Vertex vertex.Vertex
	Kind   vertex.EdgeKind
}

// Metric is a single coupled value a PE publishes at the end of an
// iteration (update_coupled_val's out_metric).
type Metric float64

// CoupleTarget names one outgoing coupling message: the destination vertex
// (whose owning PE is the transport destination) and the payload to deliver
// into that vertex's mailbox.
type CoupleTarget struct {
	VertexID vertex.ID
	Payload  []byte
}

// Set groups the simulation-provided callback functions the driver invokes
// once per iteration. Every field must be non-nil before the driver starts;
// driver.New validates this.
type Set struct {
	// PartitionOf maps a vertex to the partition it currently belongs to.
	PartitionOf func(v vertex.Vertex) vertex.Partition

	// MightInteract appends to out every partition that might hold a
	// neighbor of a vertex in p, and returns the extended slice.
	MightInteract func(p vertex.Partition, out []vertex.Partition) []vertex.Partition

	// ShouldHaveEdge decides what edge kind (if any) should connect a to b.
	ShouldHaveEdge func(a, b vertex.Vertex) vertex.EdgeKind

	// UpdateMetadata lets the simulation mutate v in place given its current
	// neighbor set, and returns the coupling messages v should emit this
	// iteration — each naming the destination vertex id (spec.md's
	// couple_with_set) and the payload to deliver there.
	UpdateMetadata func(v *vertex.Vertex, neighbors []Neighbor) (coupleWith []CoupleTarget)

	// UpdateCoupledVal computes this PE's published metric for iteration
	// iter.
	UpdateCoupledVal func(iter int) Metric

	// ShouldTerminate reports whether this PE is ready to stop iterating,
	// given the metrics most recently published by its coupled partners.
	ShouldTerminate func(iter int, coupledMetrics map[int]Metric) bool
}

// Validate reports which required callback is missing, or nil if every
// field is set.
func (s Set) Validate() error {
	switch {
	case s.PartitionOf == nil:
		return errMissing("PartitionOf")
	case s.MightInteract == nil:
		return errMissing("MightInteract")
	case s.ShouldHaveEdge == nil:
		return errMissing("ShouldHaveEdge")
	case s.UpdateMetadata == nil:
		return errMissing("UpdateMetadata")
	case s.UpdateCoupledVal == nil:
		return errMissing("UpdateCoupledVal")
	case s.ShouldTerminate == nil:
		return errMissing("ShouldTerminate")
	}
	return nil
}

type missingCallbackError string

func (m missingCallbackError) Error() string {
	return "callback: " + string(m) + " is required"
}

func errMissing(name string) error {
	return missingCallbackError(name)
}
