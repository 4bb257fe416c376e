package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuhualu185086661/LKH/ascent"
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

func TestCreateBoundsListSize(t *testing.T) {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	s := Create(p, res.Tree, 2)
	for i := 0; i < p.Dimension; i++ {
		assert.LessOrEqual(t, len(s.Lists[i]), 2)
		assert.NotContains(t, toSlice(s.Lists[i]), int32(i))
	}
}

func TestListsAreSortedByAlpha(t *testing.T) {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	s := Create(p, res.Tree, 3)
	for i := 0; i < p.Dimension; i++ {
		for k := 1; k < len(s.Lists[i]); k++ {
			assert.LessOrEqual(t, s.Lists[i][k-1].Alpha, s.Lists[i][k].Alpha)
		}
	}
}

func TestExtendIsIdempotent(t *testing.T) {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	s := Create(p, res.Tree, 1)
	before := len(s.Lists[0])
	s.Extend(0, s.Lists[0][0])
	assert.Len(t, s.Lists[0], before)
}

func TestAdjustWithNoSecondBestFilesUnderBackbone(t *testing.T) {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	s := Create(p, res.Tree, 2)

	s.Adjust(0, [2]int32{1, 3}, [2]int32{-1, -1}, false, p)
	assert.Len(t, s.Backbone[0], 2)
	assert.Empty(t, s.Common[0])
	assert.Len(t, s.Neighbors(0), len(s.Backbone[0])+len(s.Lists[0]))

	s.Reset()
	assert.Empty(t, s.Backbone[0])
	assert.Empty(t, s.Common[0])
	assert.Equal(t, s.Lists[0], s.Neighbors(0))
}

func TestAdjustPromotesSharedEdgesToCommon(t *testing.T) {
	p := squareProblem(t)
	res := ascent.Run(p, ascent.DefaultConfig())
	s := Create(p, res.Tree, 2)

	// First best tour: 0's neighbors are 1 and 3, nothing to compare yet.
	s.Adjust(0, [2]int32{1, 3}, [2]int32{-1, -1}, false, p)
	require.Len(t, s.Backbone[0], 2)

	// Second best tour shares neighbor 1 with the first but replaces 3
	// with 2: 1 is common to both, 2 is unique to the new best.
	s.Adjust(0, [2]int32{1, 2}, [2]int32{1, 3}, true, p)

	assert.Equal(t, []int32{1}, toSlice(s.Common[0]))
	assert.ElementsMatch(t, []int32{2, 3}, toSlice(s.Backbone[0]))

	neighbors := toSlice(s.Neighbors(0))
	require.GreaterOrEqual(t, len(neighbors), 1)
	assert.Equal(t, int32(1), neighbors[0], "common edges must precede backbone-only edges")
}

func toSlice(edges []Edge) []int32 {
	out := make([]int32, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out
}
