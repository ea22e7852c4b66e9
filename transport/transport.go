// Package transport defines the one-sided messaging contract HOOVER's core
// is written against (SPEC_FULL.md §4.8 / spec.md §6), and an in-memory
// reference implementation used by tests, the driver, and the CLI demo.
//
// The contract is split in two: BitmapTransport is the narrow symmetric-
// memory interface bitvec needs (atomic word ops plus bulk row get), and
// VertexTransport is the bulk vertex/message exchange the driver uses for
// partition pulls and coupling delivery. The core never depends on how
// either is carried — partitioned global address space, RDMA, or, as here,
// goroutines and mutexes within one process.
package transport

import "context"

// BitmapTransport is the symmetric-memory contract bitvec.Bitmap is built
// against: atomic OR/AND/INC/FETCH on remote uint64 words, a fence ordering
// an initiator's prior ops before its subsequent ones, and a bulk row read.
type BitmapTransport interface {
	// AtomicOr performs words[offset] |= mask at pe and returns nothing;
	// other initiators are only guaranteed to observe the write after a
	// Fence call by the same initiator (InMemory makes it visible at once).
	AtomicOr(ctx context.Context, pe int, region string, offset int, mask uint64) error
	AtomicAnd(ctx context.Context, pe int, region string, offset int, mask uint64) error
	AtomicInc(ctx context.Context, pe int, region string, offset int) error
	AtomicFetch(ctx context.Context, pe int, region string, offset int) (uint64, error)

	// Fence orders every op this initiator has issued, in any region, before
	// any op it issues after the call returns. Required between a bit write
	// and the seq-number increment that publishes it (spec.md §4.3).
	Fence(ctx context.Context) error

	// GetBulk reads count consecutive uint64 words starting at offset in pe's
	// region. The read is not atomic with respect to concurrent writers.
	GetBulk(ctx context.Context, pe int, region string, offset, count int) ([]uint64, error)

	MyPE() int
	NPEs() int
	BarrierAll(ctx context.Context) error
}

// Vertex is the wire representation of a vertex.Vertex plus the id, kept
// transport-agnostic (no dependency on the vertex package's internal
// layout beyond what's already public).
type Vertex struct {
	ID       uint64
	Features [8]float64
}

// VertexTransport is the bulk exchange contract the iteration driver uses
// for partition pulls (step 4, spec.md §4.7) and coupling-message delivery
// (step 6/7). Unlike BitmapTransport it is not word-addressed: callers name
// a partition and get back whatever vertices are currently registered to it
// on the remote PE.
type VertexTransport interface {
	// PublishPartitionVertices replaces this PE's published vertex list for
	// partition p — the bulk "put" side of the contract (spec.md §6's
	// put_bulk), called once per iteration by the owning PE after it
	// recomputes which vertices currently belong to p.
	PublishPartitionVertices(ctx context.Context, p int32, verts []Vertex) error

	// PartitionVertices returns every vertex pe currently has registered to
	// partition p — the bulk "get" side (get_bulk).
	PartitionVertices(ctx context.Context, pe int, p int32) ([]Vertex, error)

	// SendMessage delivers payload to pe's inbound mailbox for vertex id.
	// Mailboxes are LIFO and delivery order across senders is unspecified
	// (spec.md §4.6).
	SendMessage(ctx context.Context, pe int, vertexID uint64, payload []byte) error

	// PollMessages drains and returns every message enqueued for this PE
	// since the last call.
	PollMessages(ctx context.Context) ([]InboundMessage, error)

	MyPE() int
	NPEs() int
	BarrierAll(ctx context.Context) error
}

// InboundMessage is a coupling message delivered to a PE via SendMessage.
type InboundMessage struct {
	VertexID uint64
	Payload  []byte
}
