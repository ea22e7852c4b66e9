package driver_test

import (
	"context"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hoover-rt/hoover/callback"
	"github.com/hoover-rt/hoover/config"
	"github.com/hoover-rt/hoover/driver"
	"github.com/hoover-rt/hoover/transport"
	"github.com/hoover-rt/hoover/vertex"
)

// This suite exercises the driver against a mocked transport.Transport
// instead of transport.InMemory, so the Given/When/Then flows here describe
// driver behavior in terms of the calls it makes against the one-sided
// contract rather than against another package's state.
var _ = Describe("Driver", func() {
	var (
		mockCtrl  *gomock.Controller
		mt        *MockTransport
		published []transport.Vertex
	)

	newDriverWithTerminationAt := func(iter int) *driver.Driver {
		cb := callback.Set{
			PartitionOf: func(v vertex.Vertex) vertex.Partition { return 0 },
			MightInteract: func(p vertex.Partition, out []vertex.Partition) []vertex.Partition {
				return append(out, p)
			},
			ShouldHaveEdge:   func(a, b vertex.Vertex) vertex.EdgeKind { return vertex.NoEdge },
			UpdateMetadata:   func(v *vertex.Vertex, _ []callback.Neighbor) []callback.CoupleTarget { return nil },
			UpdateCoupledVal: func(iter int) callback.Metric { return 0 },
			ShouldTerminate:  func(i int, _ map[int]callback.Metric) bool { return i >= iter },
		}
		cfg := &config.Config{DistBitvecPoolSize: 1024, VertCachePreallocs: 64, VertCacheSegs: 8}
		localVerts := []vertex.Vertex{{ID: vertex.NewID(0, 0), Features: [vertex.NumFeatures]float64{7}}}

		d, err := driver.New(mt, 1, cfg, cb, localVerts)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mt = NewMockTransport(mockCtrl)
		published = nil

		mt.EXPECT().MyPE().Return(0).AnyTimes()
		mt.EXPECT().NPEs().Return(1).AnyTimes()
		mt.EXPECT().AtomicOr(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().AtomicAnd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().AtomicInc(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().AtomicFetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uint64(0), nil).AnyTimes()
		mt.EXPECT().Fence(gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().GetBulk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]uint64{0}, nil).AnyTimes()
		mt.EXPECT().BarrierAll(gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().PartitionVertices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		mt.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mt.EXPECT().PollMessages(gomock.Any()).Return(nil, nil).AnyTimes()
		mt.EXPECT().
			PublishPartitionVertices(gomock.Any(), int32(0), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int32, verts []transport.Vertex) error {
				published = verts
				return nil
			}).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when a PE owns a partition", func() {
		It("publishes that partition's vertex list every iteration", func() {
			d := newDriverWithTerminationAt(0)

			status, err := d.RunIteration(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(driver.Terminated))
			Expect(published).To(HaveLen(1))
			Expect(published[0].ID).To(Equal(uint64(vertex.NewID(0, 0))))
			Expect(published[0].Features[0]).To(Equal(7.0))
		})
	})

	Context("when ShouldTerminate has not yet fired", func() {
		It("reports Continue and keeps iterating", func() {
			d := newDriverWithTerminationAt(3)

			first, err := d.RunIteration(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(driver.Continue))

			second, err := d.RunIteration(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(driver.Continue))
		})
	})
})

// This suite exercises partition-membership convergence (spec.md's Scenario
// B) over a real transport.InMemory cluster rather than a mocked transport,
// since the behavior under test is cross-PE bitmap visibility, not calls any
// one driver makes against the transport interface. Reduced from the
// original 4 PEs / 1024 partitions to 4 PEs / 32 partitions: the convergence
// property scales with the bitmap's row/column geometry, not its size.
var _ = Describe("Partition membership convergence", func() {
	const nPEs = 4
	const nPartitions = 32
	const partitionsPerPE = nPartitions / nPEs

	It("converges every PE's producer-set view to the true partition ownership", func() {
		shards := transport.NewCluster(nPEs)
		drivers := make([]*driver.Driver, nPEs)

		for pe := 0; pe < nPEs; pe++ {
			cb := callback.Set{
				PartitionOf: func(v vertex.Vertex) vertex.Partition {
					return vertex.Partition(v.ID.OwnerPE() * partitionsPerPE)
				},
				MightInteract: func(_ vertex.Partition, out []vertex.Partition) []vertex.Partition {
					for q := 0; q < nPartitions; q++ {
						out = append(out, vertex.Partition(q))
					}
					return out
				},
				ShouldHaveEdge:   func(a, b vertex.Vertex) vertex.EdgeKind { return vertex.NoEdge },
				UpdateMetadata:   func(v *vertex.Vertex, _ []callback.Neighbor) []callback.CoupleTarget { return nil },
				UpdateCoupledVal: func(iter int) callback.Metric { return 0 },
				ShouldTerminate:  func(i int, _ map[int]callback.Metric) bool { return i >= 1 },
			}
			cfg := &config.Config{DistBitvecPoolSize: 4096, VertCachePreallocs: 64, VertCacheSegs: 8}
			localVerts := []vertex.Vertex{{ID: vertex.NewID(pe, 0)}}

			d, err := driver.New(shards[pe], nPartitions, cfg, cb, localVerts)
			Expect(err).NotTo(HaveOccurred())
			drivers[pe] = d
		}

		// One round lets every PE announce ownership via the bitmap; a
		// second round is needed for discoverProducers to observe the seq
		// bump every peer's first round produced.
		for round := 0; round < 2; round++ {
			for _, d := range drivers {
				_, err := d.RunIteration(context.Background())
				Expect(err).NotTo(HaveOccurred())
			}
		}

		for pe := 0; pe < nPEs; pe++ {
			for owner := 0; owner < nPEs; owner++ {
				p := vertex.Partition(owner * partitionsPerPE)
				Expect(drivers[pe].ProducerSet(p)).To(ConsistOf(uint64(owner)),
					"pe %d's view of partition %d's producers", pe, p)
			}
		}
	})
})
