package hashset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsRotationAndDirectionInvariant(t *testing.T) {
	a := []int32{0, 1, 2, 3, 0}
	rotated := []int32{2, 3, 0, 1, 2}
	reversed := []int32{0, 3, 2, 1, 0}
	assert.Equal(t, Hash(a), Hash(rotated))
	assert.Equal(t, Hash(a), Hash(reversed))
}

func TestHashDiffersForDifferentTours(t *testing.T) {
	a := []int32{0, 1, 2, 3, 0}
	b := []int32{0, 2, 1, 3, 0}
	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestSeenAddClear(t *testing.T) {
	s := New(4)
	h := Hash([]int32{0, 1, 2, 3, 0})

	_, ok := s.Seen(h)
	assert.False(t, ok)

	s.Add(h, 42.0)
	cost, ok := s.Seen(h)
	assert.True(t, ok)
	assert.Equal(t, 42.0, cost)

	s.Clear()
	_, ok = s.Seen(h)
	assert.False(t, ok)
}

func TestGrowPreservesEntries(t *testing.T) {
	s := New(2)
	hashes := make([]uint64, 0, 20)
	for i := 0; i < 20; i++ {
		tour := []int32{int32(i), int32(i + 1), int32(i + 2), int32(i)}
		h := Hash(tour)
		hashes = append(hashes, h)
		s.Add(h, float64(i))
	}
	for i, h := range hashes {
		cost, ok := s.Seen(h)
		assert.True(t, ok)
		assert.Equal(t, float64(i), cost)
	}
}
