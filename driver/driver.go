// Package driver implements the halo protocol / iteration driver from
// SPEC_FULL.md §4.7: the per-PE loop that announces partition membership,
// discovers and pulls remote vertices, rebuilds edges against the cached
// halo, runs the user's update callback, and drains coupling messages,
// grounded on the eight-step sequence spec.md §4.7 describes and on
// hvr.c's main loop structure (original_source/).
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/hoover-rt/hoover/bitvec"
	"github.com/hoover-rt/hoover/callback"
	"github.com/hoover-rt/hoover/config"
	"github.com/hoover-rt/hoover/core"
	"github.com/hoover-rt/hoover/irrmatrix"
	"github.com/hoover-rt/hoover/msgbuf"
	"github.com/hoover-rt/hoover/slab"
	"github.com/hoover-rt/hoover/sparsearr"
	"github.com/hoover-rt/hoover/transport"
	"github.com/hoover-rt/hoover/vertex"
	"github.com/hoover-rt/hoover/vertexcache"
)

// Transport is the union of the two transport interfaces the driver needs:
// BitmapTransport for partition-membership announcements, VertexTransport
// for partition pulls and coupling delivery.
type Transport interface {
	transport.BitmapTransport
	transport.VertexTransport
}

// Status reports the outcome of one RunIteration call.
type Status int

const (
	// Continue means the simulation should keep iterating.
	Continue Status = iota
	// Terminated means this PE's ShouldTerminate callback returned true.
	Terminated
	// TimeExceeded means the wall-clock budget expired before this
	// iteration started.
	TimeExceeded
)

// Option configures a Driver at construction, following the teacher's
// functional-options convention (core.GraphOption).
type Option func(*Driver)

// WithFatalHandler overrides the default log-and-exit fatal handler —
// tests use this to observe a fatal condition without killing the test
// binary.
func WithFatalHandler(h func(pe int, component, msg string)) Option {
	return func(d *Driver) { d.onFatal = h }
}

// WithBudget sets the wall-clock time budget after which RunIteration
// returns TimeExceeded at the next iteration boundary. Zero (the default)
// means no budget.
func WithBudget(budget time.Duration) Option {
	return func(d *Driver) { d.budget = budget }
}

type producerKey struct {
	pe        int
	partition int32
}

// Driver runs the iteration loop for one PE's local vertex shard.
type Driver struct {
	t       Transport
	cb      callback.Set
	onFatal fatalHandler

	myPE         int
	nPartitions  int
	bitmap       *bitvec.Bitmap
	cache        *vertexcache.Cache
	matrix       *irrmatrix.Matrix
	mailboxes    *msgbuf.Buffers[[]byte]
	producers    *sparsearr.Array
	subcopies    map[vertex.Partition]*bitvec.LocalSubcopy
	lastSeenSeq  map[producerKey]uint64
	owned        map[vertex.Partition]bool
	peerMetrics  map[int]callback.Metric

	localVertices []vertex.Vertex
	startedAt     time.Time
	budget        time.Duration
	iter          int
	lastMetric    callback.Metric
}

// New builds a Driver for the nvertices vertices in localVertices, operating
// over nPartitions partitions via t, using cfg's pool-sizing knobs.
func New(t Transport, nPartitions int, cfg *config.Config, cb callback.Set, localVertices []vertex.Vertex, opts ...Option) (*Driver, error) {
	if err := cb.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCallbacks, err)
	}
	d := &Driver{
		t:             t,
		cb:            cb,
		onFatal:       defaultFatalHandler,
		myPE:          t.MyPE(),
		nPartitions:   nPartitions,
		bitmap:        bitvec.New(t, nPartitions, t.NPEs(), cfg.DistBitvecPoolSize),
		cache:         vertexcache.New(cfg.VertCachePreallocs, cfg.VertCacheSegs),
		matrix:        irrmatrix.New(len(localVertices)),
		mailboxes:     msgbuf.New[[]byte](len(localVertices)),
		producers:     sparsearr.New(nPartitions),
		subcopies:     make(map[vertex.Partition]*bitvec.LocalSubcopy),
		lastSeenSeq:   make(map[producerKey]uint64),
		owned:         make(map[vertex.Partition]bool),
		peerMetrics:   make(map[int]callback.Metric),
		localVertices: localVertices,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// LocalVertices exposes the current state of this PE's owned vertices, for
// debugging and tests (e.g. asserting Scenario A's final chaser/prey
// positions).
func (d *Driver) LocalVertices() []vertex.Vertex {
	out := make([]vertex.Vertex, len(d.localVertices))
	copy(out, d.localVertices)
	return out
}

// Matrix exposes the irregular-matrix adjacency built by the last
// rebuildEdges pass, for tests asserting edge-predicate symmetry
// (Scenario E).
func (d *Driver) Matrix() *irrmatrix.Matrix { return d.matrix }

// Cache exposes the vertex cache, for tests and diagnostics.
func (d *Driver) Cache() *vertexcache.Cache { return d.cache }

// Mailboxes exposes the per-vertex coupling mailboxes, for tests asserting
// coupling fan-out (Scenario F).
func (d *Driver) Mailboxes() *msgbuf.Buffers[[]byte] { return d.mailboxes }

// LocalGraph renders the irregular matrix built by the last rebuildEdges
// pass as a core.Graph snapshot: one vertex per local vertex and every
// cached neighbor it currently holds an edge to, directed edges kept
// directed and bidirectional edges kept undirected. Used for debugging and
// for running connectivity queries (bfs.BFS) over a PE's current halo view.
func (d *Driver) LocalGraph() (*core.Graph, error) {
	g := core.NewGraph(len(d.localVertices))
	for _, lv := range d.localVertices {
		g.AddVertex(lv.ID)
	}
	for i, lv := range d.localVertices {
		for _, info := range d.matrix.Linearize(i) {
			neighbor := info.Vertex()
			g.AddVertex(neighbor)
			if err := g.AddEdge(lv.ID, neighbor, info.Kind()); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// RunIteration executes one full pass of the eight-step halo protocol
// (spec.md §4.7) and returns whether the simulation should continue.
func (d *Driver) RunIteration(ctx context.Context) (Status, error) {
	if d.budget > 0 {
		if d.startedAt.IsZero() {
			d.startedAt = time.Now()
		} else if time.Since(d.startedAt) > d.budget {
			return TimeExceeded, ErrTimeBudgetExceeded
		}
	}

	d.recomputeOwnPartitions(ctx)
	interest := d.expandInterest()
	jobs := d.discoverProducers(ctx, interest)
	d.pullVertices(ctx, jobs)
	neighborsByVertex := d.rebuildEdges(interest)
	d.userUpdate(ctx, neighborsByVertex)
	d.pollCoupling(ctx)

	terminate := d.cb.ShouldTerminate(d.iter, d.peerMetrics)
	d.iter++
	if terminate {
		return Terminated, nil
	}
	return Continue, nil
}

// step 1: recompute own partitions, announce membership via the bitmap, and
// publish this PE's current vertex-per-partition lists so peers' step 4 pulls
// see them.
func (d *Driver) recomputeOwnPartitions(ctx context.Context) {
	newOwned := make(map[vertex.Partition]bool, len(d.localVertices))
	byPartition := make(map[vertex.Partition][]transport.Vertex, len(d.localVertices))
	for i, v := range d.localVertices {
		p := d.cb.PartitionOf(v)
		d.localVertices[i].Partition = p
		newOwned[p] = true
		byPartition[p] = append(byPartition[p], transport.Vertex{ID: uint64(v.ID), Features: v.Features})
	}
	for p := range newOwned {
		if !d.owned[p] {
			if err := d.bitmap.Set(ctx, int(p), d.myPE); err != nil {
				d.fatal("bitvec", "set(%d,%d): %v", p, d.myPE, err)
			}
		}
	}
	for p := range d.owned {
		if !newOwned[p] {
			if err := d.bitmap.Clear(ctx, int(p), d.myPE); err != nil {
				d.fatal("bitvec", "clear(%d,%d): %v", p, d.myPE, err)
			}
			if err := d.t.PublishPartitionVertices(ctx, int32(p), nil); err != nil {
				d.fatal("transport", "publish_partition_vertices(%d): %v", p, err)
			}
		}
	}
	for p, verts := range byPartition {
		if err := d.t.PublishPartitionVertices(ctx, int32(p), verts); err != nil {
			d.fatal("transport", "publish_partition_vertices(%d): %v", p, err)
		}
	}
	d.owned = newOwned
}

// step 2: expand interest = union over owned partitions of might_interact.
func (d *Driver) expandInterest() []vertex.Partition {
	seen := make(map[vertex.Partition]bool)
	var out []vertex.Partition
	var buf []vertex.Partition
	for p := range d.owned {
		buf = d.cb.MightInteract(p, buf[:0])
		for _, q := range buf {
			if !seen[q] {
				seen[q] = true
				out = append(out, q)
			}
		}
	}
	return out
}

type pullJob struct {
	pe        int
	partition vertex.Partition
}

// step 3: discover producers whose row seq advanced since last observed. Each
// partition's LocalSubcopy is kept in d.subcopies and refreshed in place
// across iterations rather than reallocated, so a partition that stays in
// this PE's interest set for many rounds copies its row's seq number and
// words into the same backing slice every time.
func (d *Driver) discoverProducers(ctx context.Context, interest []vertex.Partition) []pullJob {
	var jobs []pullJob
	stillInterested := make(map[vertex.Partition]bool, len(interest))
	for _, p := range interest {
		stillInterested[p] = true

		sub, cached := d.subcopies[p]
		var err error
		if !cached {
			if len(d.subcopies) >= d.bitmap.SubcopyCapacity() {
				d.fatal("bitvec", "%v: partition %d (capacity %d)", bitvec.ErrSubcopyPoolExhausted, p, d.bitmap.SubcopyCapacity())
				continue
			}
			sub, err = d.bitmap.CopyLocally(ctx, int(p))
			if err != nil {
				d.fatal("bitvec", "copy_locally(%d): %v", p, err)
				continue
			}
			d.subcopies[p] = sub
		} else if err = d.bitmap.Refresh(ctx, int(p), sub); err != nil {
			d.fatal("bitvec", "refresh(%d): %v", p, err)
			continue
		}

		var currentPEs []uint64
		for pe := 0; pe < d.t.NPEs(); pe++ {
			if !sub.Contains(pe) {
				continue
			}
			currentPEs = append(currentPEs, uint64(pe))

			key := producerKey{pe: pe, partition: int32(p)}
			if sub.SeqNo() > d.lastSeenSeq[key] {
				jobs = append(jobs, pullJob{pe: pe, partition: p})
				d.lastSeenSeq[key] = sub.SeqNo()
			}
		}
		d.syncProducerSet(p, currentPEs)
	}
	for p, sub := range d.subcopies {
		if !stillInterested[p] {
			sub.Release()
			delete(d.subcopies, p)
		}
	}
	return jobs
}

// syncProducerSet keeps the local sparse-array cache of "which PEs currently
// hold partition p" in step with the bitmap row just observed.
func (d *Driver) syncProducerSet(p vertex.Partition, currentPEs []uint64) {
	known := d.producers.LinearizeRow(int(p))
	current := make(map[uint64]bool, len(currentPEs))
	for _, pe := range currentPEs {
		current[pe] = true
	}
	for _, pe := range known {
		if !current[pe] {
			d.producers.Remove(int(p), pe)
		}
	}
	for pe := range current {
		d.producers.Insert(int(p), pe)
	}
}

// ProducerSet returns this driver's locally cached view of which PEs
// currently hold vertices in partition p, as of the last discoverProducers
// pass.
func (d *Driver) ProducerSet(p vertex.Partition) []uint64 {
	return d.producers.LinearizeRow(int(p))
}

// step 4: pull vertices for each (pe, partition) whose seq advanced.
func (d *Driver) pullVertices(ctx context.Context, jobs []pullJob) {
	for _, job := range jobs {
		verts, err := d.t.PartitionVertices(ctx, job.pe, int32(job.partition))
		if err != nil {
			d.fatal("transport", "partition_vertices(%d,%d): %v", job.pe, job.partition, err)
			continue
		}
		for _, rv := range verts {
			id := vertex.ID(rv.ID)
			if _, ok := d.cache.Lookup(id); ok {
				_ = d.cache.Delete(id)
			}
			v := vertex.Vertex{ID: id, Partition: job.partition, Features: rv.Features}
			if _, err := d.cache.Add(v, job.partition); err != nil {
				d.fatal("vertexcache", "add(%s): %v", id, err)
			}
		}
	}
}

// step 5: rebuild edges against the cached halo, returning each local
// vertex's current neighbor set for step 6.
func (d *Driver) rebuildEdges(interest []vertex.Partition) [][]callback.Neighbor {
	neighborsByVertex := make([][]callback.Neighbor, len(d.localVertices))
	var localNeighborHandles []slab.Handle
	seenHandles := make(map[slab.Handle]bool)

	for i, lv := range d.localVertices {
		var neighbors []callback.Neighbor
		for _, p := range interest {
			for _, rv := range d.cache.PartitionList(p) {
				kind := d.cb.ShouldHaveEdge(lv, rv)
				d.matrix.Set(i, rv.ID, kind)
				if kind == vertex.NoEdge {
					continue
				}
				neighbors = append(neighbors, callback.Neighbor{Vertex: rv, Kind: kind})
				if h, ok := d.cache.Handle(rv.ID); ok && !seenHandles[h] {
					seenHandles[h] = true
					localNeighborHandles = append(localNeighborHandles, h)
				}
			}
		}
		neighborsByVertex[i] = neighbors
	}
	d.cache.SetLocalNeighbors(localNeighborHandles)
	return neighborsByVertex
}

// step 6: invoke the user update callback, emitting coupling messages, then
// compute this PE's published coupling metric for the iteration just run.
func (d *Driver) userUpdate(ctx context.Context, neighborsByVertex [][]callback.Neighbor) {
	for i := range d.localVertices {
		v := d.localVertices[i]
		coupleWith := d.cb.UpdateMetadata(&v, neighborsByVertex[i])
		d.localVertices[i] = v
		for _, target := range coupleWith {
			pe := target.VertexID.OwnerPE()
			if err := d.t.SendMessage(ctx, pe, uint64(target.VertexID), target.Payload); err != nil {
				d.fatal("transport", "send_message(%d,%s): %v", pe, target.VertexID, err)
			}
		}
	}
	d.lastMetric = d.cb.UpdateCoupledVal(d.iter)
}

// step 7: poll inbound coupling messages into per-vertex mailboxes.
func (d *Driver) pollCoupling(ctx context.Context) {
	msgs, err := d.t.PollMessages(ctx)
	if err != nil {
		d.fatal("transport", "poll_messages: %v", err)
		return
	}
	for _, m := range msgs {
		idx := vertex.ID(m.VertexID).Offset()
		if int(idx) < len(d.localVertices) {
			d.mailboxes.Insert(int(idx), m.Payload)
		}
	}
}

// LastMetric returns the coupling metric this PE published via
// UpdateCoupledVal at the end of its most recently completed iteration.
// spec.md names no wire format for distributing these between PEs (only
// that should_terminate consults them), so the demo harness reads each
// shard's LastMetric after a barrier and feeds peers' values to the others
// via ObservePeerMetric before the next iteration.
func (d *Driver) LastMetric() callback.Metric {
	return d.lastMetric
}

// ObservePeerMetric records pe's most recently published coupling metric,
// for this Driver's next ShouldTerminate evaluation.
func (d *Driver) ObservePeerMetric(pe int, m callback.Metric) {
	d.peerMetrics[pe] = m
}
