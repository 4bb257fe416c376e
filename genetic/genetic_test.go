package genetic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuhualu185086661/LKH/ascent"
	"github.com/wuhualu185086661/LKH/candidate"
	"github.com/wuhualu185086661/LKH/problem"
)

func squareProblem(t *testing.T) *problem.Problem {
	p, err := problem.NewFromCoords("square", problem.EdgeWeightEUC2D, 1, []problem.Node{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	})
	require.NoError(t, err)
	return p
}

func squareCandidates(t *testing.T) *candidate.Set {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	return candidate.Create(p, res.Tree, 3)
}

func assertPermutation(t *testing.T, tr []int32, n int) {
	seen := make([]bool, n)
	require.Len(t, tr, n)
	for _, c := range tr {
		require.False(t, seen[c])
		seen[c] = true
	}
}

func TestPoolAddFillsUpToCapacity(t *testing.T) {
	pool := NewPool(3)
	r := rand.New(rand.NewSource(1))
	pool.Add([]int32{0, 1, 2, 3}, 40, r)
	pool.Add([]int32{0, 2, 1, 3}, 56, r)
	assert.Len(t, pool.Members, 2)
	assert.False(t, pool.Saturated())
}

func TestPoolAddRejectsDuplicateCost(t *testing.T) {
	pool := NewPool(3)
	r := rand.New(rand.NewSource(1))
	pool.Add([]int32{0, 1, 2, 3}, 40, r)
	pool.Add([]int32{3, 2, 1, 0}, 40, r)
	assert.Len(t, pool.Members, 1)
}

func TestPoolAddEvictsOnceSaturated(t *testing.T) {
	pool := NewPool(2)
	r := rand.New(rand.NewSource(1))
	pool.Add([]int32{0, 1, 2, 3}, 40, r)
	pool.Add([]int32{0, 2, 1, 3}, 56, r)
	require.True(t, pool.Saturated())
	pool.Add([]int32{1, 0, 2, 3}, 48, r)
	assert.Len(t, pool.Members, 2)
}

func TestSelectReturnsTwoDistinctMembers(t *testing.T) {
	pool := NewPool(4)
	r := rand.New(rand.NewSource(7))
	pool.Add([]int32{0, 1, 2, 3}, 40, r)
	pool.Add([]int32{0, 2, 1, 3}, 56, r)
	pool.Add([]int32{1, 0, 2, 3}, 48, r)
	pool.Add([]int32{2, 0, 1, 3}, 60, r)

	a, b := pool.Select(r, 1.25)
	assert.NotEqual(t, a, b)
	assert.True(t, a >= 0 && a < len(pool.Members))
	assert.True(t, b >= 0 && b < len(pool.Members))
}

func TestSelectFavorsCheaperMembersOverManyDraws(t *testing.T) {
	pool := NewPool(4)
	r := rand.New(rand.NewSource(3))
	pool.Add([]int32{0, 1, 2, 3}, 10, r)
	pool.Add([]int32{0, 2, 1, 3}, 20, r)
	pool.Add([]int32{1, 0, 2, 3}, 30, r)
	pool.Add([]int32{2, 0, 1, 3}, 40, r)

	counts := make(map[int]int)
	for i := 0; i < 2000; i++ {
		a, b := pool.Select(r, 1.25)
		counts[a]++
		counts[b]++
	}
	// Index 0 holds the cheapest member (cost 10); it should be drawn more
	// often than the most expensive one at index 3.
	assert.Greater(t, counts[0], counts[3])
}

func TestCrossoverProducesAPermutation(t *testing.T) {
	cand := squareCandidates(t)
	p := squareProblem(t)
	r := rand.New(rand.NewSource(1))
	a := []int32{0, 1, 2, 3}
	b := []int32{0, 2, 1, 3}

	child := Crossover(p, cand, a, b, r)
	assertPermutation(t, child, 4)
}

func TestCrossoverOnIdenticalParentsReturnsThatTour(t *testing.T) {
	cand := squareCandidates(t)
	p := squareProblem(t)
	r := rand.New(rand.NewSource(1))
	a := []int32{0, 1, 2, 3}

	child := Crossover(p, cand, a, a, r)
	assertPermutation(t, child, 4)
	cost, err := p.TourLength(closeTour(child))
	require.NoError(t, err)
	assert.InDelta(t, 40.0, cost, 1e-6)
}

func closeTour(tr []int32) []int32 {
	out := make([]int32, len(tr)+1)
	copy(out, tr)
	out[len(tr)] = tr[0]
	return out
}
