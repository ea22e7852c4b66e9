package transport_test

import (
	"context"
	"testing"

	"github.com/hoover-rt/hoover/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicOrAndFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	shards := transport.NewCluster(2)
	a, b := shards[0], shards[1]

	require.NoError(t, a.AtomicOr(ctx, 1, "bits", 0, 0b0101))
	require.NoError(t, a.Fence(ctx))

	v, err := b.AtomicFetch(ctx, 1, "bits", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b0101), v)

	require.NoError(t, a.AtomicAnd(ctx, 1, "bits", 0, ^uint64(0b0001)))
	v, err = b.AtomicFetch(ctx, 1, "bits", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b0100), v)
}

func TestAtomicIncIsVisibleCrossPE(t *testing.T) {
	ctx := context.Background()
	shards := transport.NewCluster(3)

	require.NoError(t, shards[0].AtomicInc(ctx, 2, "seq", 5))
	require.NoError(t, shards[1].AtomicInc(ctx, 2, "seq", 5))

	v, err := shards[2].AtomicFetch(ctx, 2, "seq", 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}

func TestGetBulkReturnsCopy(t *testing.T) {
	ctx := context.Background()
	shards := transport.NewCluster(1)
	me := shards[0]

	require.NoError(t, me.AtomicOr(ctx, 0, "row", 0, 1))
	require.NoError(t, me.AtomicOr(ctx, 0, "row", 1, 2))

	out, err := me.GetBulk(ctx, 0, "row", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, out)

	out[0] = 99
	again, _ := me.GetBulk(ctx, 0, "row", 0, 2)
	assert.Equal(t, uint64(1), again[0])
}

func TestPartitionVerticesPublishAndFetch(t *testing.T) {
	ctx := context.Background()
	shards := transport.NewCluster(2)
	producer, consumer := shards[0], shards[1]

	err := producer.PublishPartitionVertices(ctx, 7, []transport.Vertex{
		{ID: 100, Features: [8]float64{1}},
		{ID: 101, Features: [8]float64{2}},
	})
	require.NoError(t, err)

	verts, err := consumer.PartitionVertices(ctx, 0, 7)
	require.NoError(t, err)
	require.Len(t, verts, 2)
	assert.Equal(t, uint64(100), verts[0].ID)
}

func TestSendAndPollMessages(t *testing.T) {
	ctx := context.Background()
	shards := transport.NewCluster(2)
	sender, receiver := shards[0], shards[1]

	require.NoError(t, sender.SendMessage(ctx, 1, 42, []byte("hello")))
	require.NoError(t, sender.SendMessage(ctx, 1, 43, []byte("world")))

	msgs, err := receiver.PollMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	drained, err := receiver.PollMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, drained)
}

func TestMyPEAndNPEs(t *testing.T) {
	shards := transport.NewCluster(4)
	assert.Equal(t, 0, shards[0].MyPE())
	assert.Equal(t, 3, shards[3].MyPE())
	assert.Equal(t, 4, shards[0].NPEs())
}
