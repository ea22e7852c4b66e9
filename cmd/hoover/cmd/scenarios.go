package cmd

import (
	"fmt"
	"math"

	"github.com/hoover-rt/hoover/callback"
	"github.com/hoover-rt/hoover/config"
	"github.com/hoover-rt/hoover/driver"
	"github.com/hoover-rt/hoover/transport"
	"github.com/hoover-rt/hoover/vertex"
)

// chaseScenario is the two-PE pursuit from spec.md's Scenario A: PE0 owns a
// chaser vertex, PE1 a fleeing prey vertex, both living at an integer
// position on a line of nPartitions partitions (Features[0] holds the
// position). An edge forms whenever the two are within interactionRadius
// partitions of each other; while it holds, the chaser steps toward the prey
// and the prey steps away, the prey clamped to the line's far end and the
// chaser to one partition short of it.
func chaseScenario(nPartitions int) callback.Set {
	const interactionRadius = 2

	return callback.Set{
		PartitionOf: func(v vertex.Vertex) vertex.Partition {
			return vertex.Partition(v.Features[0])
		},
		MightInteract: func(p vertex.Partition, out []vertex.Partition) []vertex.Partition {
			for d := -interactionRadius; d <= interactionRadius; d++ {
				q := int(p) + d
				if q >= 0 && q < nPartitions {
					out = append(out, vertex.Partition(q))
				}
			}
			return out
		},
		ShouldHaveEdge: func(a, b vertex.Vertex) vertex.EdgeKind {
			if a.ID.OwnerPE() == b.ID.OwnerPE() {
				return vertex.NoEdge
			}
			if math.Abs(a.Features[0]-b.Features[0]) <= interactionRadius {
				return vertex.Bidirectional
			}
			return vertex.NoEdge
		},
		UpdateMetadata: func(v *vertex.Vertex, neighbors []callback.Neighbor) []callback.CoupleTarget {
			if len(neighbors) == 0 {
				return nil
			}
			switch v.ID.OwnerPE() {
			case 0: // chaser gives chase, stopping one short of the line's end
				if v.Features[0] < float64(nPartitions-2) {
					v.Features[0]++
				}
			case 1: // prey flees toward the line's end
				if v.Features[0] < float64(nPartitions-1) {
					v.Features[0]++
				}
			}
			return nil
		},
		UpdateCoupledVal: func(iter int) callback.Metric { return 0 },
		ShouldTerminate:  func(iter int, _ map[int]callback.Metric) bool { return false },
	}
}

// coupleScenario is Scenario F's bare coupling fan-out: PE0's single vertex
// emits one message to PE1's single vertex every iteration, addressed by
// that vertex's id rather than by PE number — no edges are involved.
func coupleScenario() callback.Set {
	target := vertex.NewID(1, 0)

	return callback.Set{
		PartitionOf:    func(v vertex.Vertex) vertex.Partition { return 0 },
		MightInteract:  func(_ vertex.Partition, out []vertex.Partition) []vertex.Partition { return out },
		ShouldHaveEdge: func(a, b vertex.Vertex) vertex.EdgeKind { return vertex.NoEdge },
		UpdateMetadata: func(v *vertex.Vertex, _ []callback.Neighbor) []callback.CoupleTarget {
			if v.ID.OwnerPE() != 0 {
				return nil
			}
			v.Features[0]++
			payload := []byte(fmt.Sprintf("tick-%d", int(v.Features[0])))
			return []callback.CoupleTarget{{VertexID: target, Payload: payload}}
		},
		UpdateCoupledVal: func(iter int) callback.Metric { return 0 },
		ShouldTerminate:  func(iter int, _ map[int]callback.Metric) bool { return false },
	}
}

// buildChaseDrivers wires chaseScenario's two vertices onto a two-shard
// in-memory cluster: PE0's chaser starts at position 0, PE1's prey at
// position 2.
func buildChaseDrivers(cfg *config.Config, nPartitions int, opts ...driver.Option) ([]*driver.Driver, error) {
	shards := transport.NewCluster(2)
	cb := chaseScenario(nPartitions)

	chaser := vertex.Vertex{ID: vertex.NewID(0, 0)}
	chaser.Features[0] = 0
	prey := vertex.Vertex{ID: vertex.NewID(1, 0)}
	prey.Features[0] = 2

	chaserDriver, err := driver.New(shards[0], nPartitions, cfg, cb, []vertex.Vertex{chaser}, opts...)
	if err != nil {
		return nil, err
	}
	preyDriver, err := driver.New(shards[1], nPartitions, cfg, cb, []vertex.Vertex{prey}, opts...)
	if err != nil {
		return nil, err
	}
	return []*driver.Driver{chaserDriver, preyDriver}, nil
}

// buildCoupleDrivers wires coupleScenario's sender and receiver onto a
// two-shard in-memory cluster.
func buildCoupleDrivers(cfg *config.Config, opts ...driver.Option) ([]*driver.Driver, error) {
	shards := transport.NewCluster(2)
	cb := coupleScenario()

	sender := vertex.Vertex{ID: vertex.NewID(0, 0)}
	receiver := vertex.Vertex{ID: vertex.NewID(1, 0)}

	senderDriver, err := driver.New(shards[0], 1, cfg, cb, []vertex.Vertex{sender}, opts...)
	if err != nil {
		return nil, err
	}
	receiverDriver, err := driver.New(shards[1], 1, cfg, cb, []vertex.Vertex{receiver}, opts...)
	if err != nil {
		return nil, err
	}
	return []*driver.Driver{senderDriver, receiverDriver}, nil
}
