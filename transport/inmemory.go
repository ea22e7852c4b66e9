package transport

import (
	"context"
	"fmt"
	"sync"
)

// registry is the shared state behind every InMemory shard in one cluster,
// grounded on zeonica's core.Port/sim.Connection pair — a set of per-
// component buffers moved between "ports" by a connection object — except
// HOOVER's driver polls rather than reacting to Notify* callbacks, so a
// single mutex stands in for the event-driven hook machinery.
type registry struct {
	mu sync.Mutex

	nPEs int

	// regions[pe][name] is a named symmetric array owned by pe.
	regions map[int]map[string][]uint64

	// partitionVerts[pe][partition] is the vertex list pe currently
	// publishes as resident in that partition.
	partitionVerts map[int]map[int32][]Vertex

	// mailboxes[pe] accumulates inbound coupling messages for pe, drained
	// by PollMessages.
	mailboxes map[int][]InboundMessage
}

// InMemory is one PE's handle into a shared registry. It implements both
// BitmapTransport and VertexTransport; tests and the CLI demo construct one
// per simulated PE via NewCluster and hand each to a driver.
type InMemory struct {
	reg *registry
	pe  int
}

// NewCluster builds nPEs InMemory shards sharing one registry, simulating a
// job of nPEs processes within a single Go process — used by tests and the
// CLI demo in place of a real one-sided transport.
func NewCluster(nPEs int) []*InMemory {
	reg := &registry{
		nPEs:           nPEs,
		regions:        make(map[int]map[string][]uint64),
		partitionVerts: make(map[int]map[int32][]Vertex),
		mailboxes:      make(map[int][]InboundMessage),
	}
	shards := make([]*InMemory, nPEs)
	for pe := 0; pe < nPEs; pe++ {
		reg.regions[pe] = make(map[string][]uint64)
		reg.partitionVerts[pe] = make(map[int32][]Vertex)
		shards[pe] = &InMemory{reg: reg, pe: pe}
	}
	return shards
}

func (m *InMemory) region(pe int, name string, minLen int) []uint64 {
	r := m.reg.regions[pe]
	w, ok := r[name]
	if !ok || len(w) < minLen {
		grown := make([]uint64, minLen)
		copy(grown, w)
		w = grown
		r[name] = w
	}
	return w
}

func (m *InMemory) AtomicOr(_ context.Context, pe int, region string, offset int, mask uint64) error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	w := m.region(pe, region, offset+1)
	w[offset] |= mask
	return nil
}

func (m *InMemory) AtomicAnd(_ context.Context, pe int, region string, offset int, mask uint64) error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	w := m.region(pe, region, offset+1)
	w[offset] &= mask
	return nil
}

func (m *InMemory) AtomicInc(_ context.Context, pe int, region string, offset int) error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	w := m.region(pe, region, offset+1)
	w[offset]++
	return nil
}

func (m *InMemory) AtomicFetch(_ context.Context, pe int, region string, offset int) (uint64, error) {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	w := m.region(pe, region, offset+1)
	return w[offset], nil
}

// Fence is a no-op: every InMemory operation already runs under the
// registry mutex, so program order on one initiator is always observed by
// every other initiator. Kept as an explicit call so callers (bitvec) read
// the same as they would against a real fenced transport.
func (m *InMemory) Fence(_ context.Context) error { return nil }

func (m *InMemory) GetBulk(_ context.Context, pe int, region string, offset, count int) ([]uint64, error) {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	w := m.region(pe, region, offset+count)
	out := make([]uint64, count)
	copy(out, w[offset:offset+count])
	return out, nil
}

func (m *InMemory) MyPE() int { return m.pe }
func (m *InMemory) NPEs() int { return m.reg.nPEs }

func (m *InMemory) BarrierAll(_ context.Context) error {
	// A real barrier across goroutines needs every shard to arrive before
	// any proceeds; callers that need this join their goroutines externally
	// (cmd/hoover's driveRounds waits on an errgroup each round), so the
	// in-memory reference keeps this a documented
	// no-op rather than reimplementing a distributed barrier over a single
	// process's shared memory.
	return nil
}

// PublishPartitionVertices records this PE's currently-resident vertices for
// partition p, replacing whatever was previously published. Peers observe
// this via PartitionVertices.
func (m *InMemory) PublishPartitionVertices(_ context.Context, p int32, verts []Vertex) error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	cp := make([]Vertex, len(verts))
	copy(cp, verts)
	m.reg.partitionVerts[m.pe][p] = cp
	return nil
}

func (m *InMemory) PartitionVertices(_ context.Context, pe int, p int32) ([]Vertex, error) {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	byPartition, ok := m.reg.partitionVerts[pe]
	if !ok {
		return nil, fmt.Errorf("transport: unknown pe %d", pe)
	}
	verts := byPartition[p]
	out := make([]Vertex, len(verts))
	copy(out, verts)
	return out, nil
}

func (m *InMemory) SendMessage(_ context.Context, pe int, vertexID uint64, payload []byte) error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.reg.mailboxes[pe] = append(m.reg.mailboxes[pe], InboundMessage{VertexID: vertexID, Payload: cp})
	return nil
}

func (m *InMemory) PollMessages(_ context.Context) ([]InboundMessage, error) {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	msgs := m.reg.mailboxes[m.pe]
	m.reg.mailboxes[m.pe] = nil
	return msgs, nil
}
