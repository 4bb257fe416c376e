package construct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuhualu185086661/LKH/problem"
	"github.com/wuhualu185086661/LKH/rng"
	"github.com/wuhualu185086661/LKH/tour"
)

func hexProblem(t *testing.T) *problem.Problem {
	nodes := make([]problem.Node, 6)
	for i := range nodes {
		rad := float64(i) * math.Pi / 3
		nodes[i] = problem.Node{X: 10 * math.Cos(rad), Y: 10 * math.Sin(rad)}
	}
	p, err := problem.NewFromCoords("hex", problem.EdgeWeightEUC2D, 3, nodes)
	require.NoError(t, err)
	return p
}

func assertIsPermutation(t *testing.T, tr []int32, n int) {
	seen := make([]bool, n)
	require.Len(t, tr, n)
	for _, c := range tr {
		require.False(t, seen[c], "city %d appears twice", c)
		seen[c] = true
	}
}

func TestRandomIsPermutation(t *testing.T) {
	p := hexProblem(t)
	tr := Random(p, rng.FromSeed(1))
	assertIsPermutation(t, tr, p.Dimension)
}

func TestWalkIsPermutation(t *testing.T) {
	p := hexProblem(t)
	tr := Walk(p, rng.FromSeed(1))
	assertIsPermutation(t, tr, p.Dimension)
}

func TestNearestNeighborIsPermutation(t *testing.T) {
	p := hexProblem(t)
	tr := NearestNeighbor(p)
	assertIsPermutation(t, tr, p.Dimension)
}

func TestGreedyIsPermutation(t *testing.T) {
	p := hexProblem(t)
	tr := Greedy(p)
	assertIsPermutation(t, tr, p.Dimension)
}

func TestBoruvkaIsPermutation(t *testing.T) {
	p := hexProblem(t)
	tr := Boruvka(p)
	assertIsPermutation(t, tr, p.Dimension)
}

func TestGreedyProducesValidTourList(t *testing.T) {
	p := hexProblem(t)
	tr := Greedy(p)
	list := tour.NewList(tr)
	assert.Equal(t, p.Dimension, list.Len())
	_, err := p.TourLength(list.ClosedSequence())
	assert.NoError(t, err)
}
