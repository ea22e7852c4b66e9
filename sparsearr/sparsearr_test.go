package sparsearr_test

import (
	"testing"

	"github.com/hoover-rt/hoover/sparsearr"
	"github.com/stretchr/testify/assert"
)

func TestInsertContainsRemove(t *testing.T) {
	arr := sparsearr.New(4096)
	arr.Insert(10, 7)
	assert.True(t, arr.Contains(10, 7))

	arr.Remove(10, 7)
	assert.False(t, arr.Contains(10, 7))
}

func TestSizeMatchesAVLCount(t *testing.T) {
	arr := sparsearr.New(4096)
	for _, pe := range []uint64{1, 2, 3, 4, 5} {
		arr.Insert(200, pe)
	}
	assert.Equal(t, 5, arr.Size(200))

	arr.Remove(200, 3)
	assert.Equal(t, 4, arr.Size(200))
	assert.False(t, arr.Contains(200, 3))
}

func TestRemoveValueErasesEverywhere(t *testing.T) {
	arr := sparsearr.New(4096)
	arr.Insert(1, 99)
	arr.Insert(2000, 99)
	arr.Insert(3500, 99)
	arr.Insert(3500, 42) // unrelated, must survive

	arr.RemoveValue(99)

	assert.False(t, arr.Contains(1, 99))
	assert.False(t, arr.Contains(2000, 99))
	assert.False(t, arr.Contains(3500, 99))
	assert.True(t, arr.Contains(3500, 42))
}

func TestLinearizeRow(t *testing.T) {
	arr := sparsearr.New(128)
	for _, pe := range []uint64{5, 1, 3, 2, 4} {
		arr.Insert(0, pe)
	}
	row := arr.LinearizeRow(0)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, row)
}

func TestUnpopulatedSegmentsHoldNoMemory(t *testing.T) {
	arr := sparsearr.New(1024 * 10)
	assert.Equal(t, 0, arr.PopulatedSegments())

	arr.Insert(0, 1)
	assert.Equal(t, 1, arr.PopulatedSegments())

	arr.Insert(1024*5+3, 1)
	assert.Equal(t, 2, arr.PopulatedSegments())
}

func TestLinearizeEmptyRowIsNil(t *testing.T) {
	arr := sparsearr.New(64)
	assert.Nil(t, arr.LinearizeRow(10))
}

func TestInsertIdempotent(t *testing.T) {
	arr := sparsearr.New(64)
	arr.Insert(3, 9)
	arr.Insert(3, 9)
	assert.Equal(t, 1, arr.Size(3))
}
