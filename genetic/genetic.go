// Package genetic maintains the small population solver.Run promotes
// completed trials into, and derives each subsequent run's starting tour
// from it. Select implements linear rank selection; Crossover implements
// LKH's edge-recombination-style child construction.
package genetic

import (
	"math/rand"

	"github.com/wuhualu185086661/LKH/candidate"
	"github.com/wuhualu185086661/LKH/problem"
)

// Member is one population slot: a completed trial's tour and its cost.
type Member struct {
	Tour []int32
	Cost float64
}

// Pool is the population maintained across a solver.Run's outer runs.
type Pool struct {
	Members []Member
	MaxPop  int
}

// NewPool returns an empty pool bounded to maxPop members.
func NewPool(maxPop int) *Pool {
	if maxPop < 1 {
		maxPop = 1
	}
	return &Pool{MaxPop: maxPop}
}

// Add inserts tour/cost into the pool. If the pool has room and no existing
// member already has this exact cost, it is appended; otherwise, once the
// pool is saturated, a member chosen by rank-proportional selection (biased
// toward the pool's weaker members) is evicted in its place. r drives both
// the eviction draw and (transitively, via Select's contract) subsequent
// parent draws from the same stream.
func (pool *Pool) Add(tour []int32, cost float64, r *rand.Rand) {
	for _, m := range pool.Members {
		if m.Cost == cost {
			return
		}
	}
	if len(pool.Members) < pool.MaxPop {
		pool.Members = append(pool.Members, Member{Tour: append([]int32(nil), tour...), Cost: cost})
		return
	}
	victim := rankSelectOne(pool.Members, r, 1.25, true)
	pool.Members[victim] = Member{Tour: append([]int32(nil), tour...), Cost: cost}
}

// Saturated reports whether the pool has reached its capacity, the
// precondition solver.Run checks before drawing parents for a crossover.
func (pool *Pool) Saturated() bool {
	return len(pool.Members) >= pool.MaxPop
}

// Select draws two distinct parent indices from the pool by linear rank
// selection with the given selective-pressure bias (LKH's default is 1.25):
// sorted best-to-worst, member i's weight is bias-(bias-1)*2*i/(n-1), so the
// best member is bias times as likely to be drawn as the exact midpoint and
// the worst is (2-bias) times as likely — weights always sum to n, keeping
// the "average" member's odds at exactly 1/n regardless of bias or size.
func (pool *Pool) Select(r *rand.Rand, bias float64) (a, b int) {
	order := rankOrder(pool.Members)
	a = rankSelectFromOrder(order, r, bias, -1)
	b = rankSelectFromOrder(order, r, bias, a)
	return a, b
}

// rankOrder returns member indices sorted best (lowest cost) first.
func rankOrder(members []Member) []int {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && members[order[j]].Cost < members[order[j-1]].Cost; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// rankSelectOne draws a single index by linear rank selection; worst=true
// inverts the bias so weaker members are favored, the shape Add's eviction
// draw needs instead of Select's favor-the-strong shape.
func rankSelectOne(members []Member, r *rand.Rand, bias float64, worst bool) int {
	order := rankOrder(members)
	if worst {
		bias = 2 - bias
	}
	return rankSelectFromOrder(order, r, bias, -1)
}

// rankSelectFromOrder draws one index from order (best-to-worst) weighted by
// linear rank, skipping the position already used for exclude if >= 0.
func rankSelectFromOrder(order []int, r *rand.Rand, bias float64, exclude int) int {
	n := len(order)
	if n == 1 {
		return order[0]
	}
	weights := make([]float64, n)
	total := 0.0
	for rank, idx := range order {
		if idx == exclude {
			continue
		}
		w := bias - (bias-1)*2*float64(rank)/float64(n-1)
		if w < 0 {
			w = 0
		}
		weights[rank] = w
		total += w
	}
	if total <= 0 {
		for _, idx := range order {
			if idx != exclude {
				return idx
			}
		}
		return order[0]
	}
	draw := r.Float64() * total
	for rank, idx := range order {
		if idx == exclude {
			continue
		}
		draw -= weights[rank]
		if draw <= 0 {
			return idx
		}
	}
	return order[n-1]
}

// Crossover builds a child tour from two parents by LKH's edge-recombination
// rule: at every step, prefer an edge common to both parents, then an edge
// present in exactly one, then fall back to the nearest unvisited candidate
// neighbor. Ties within an edge-bag tier favor whichever neighbor has the
// lower cost p.C, breaking further ties by city index for determinism.
func Crossover(p *problem.Problem, cand *candidate.Set, parentA, parentB []int32, r *rand.Rand) []int32 {
	n := len(parentA)
	bag := buildEdgeBag(parentA, parentB)

	visited := make([]bool, n)
	child := make([]int32, 0, n)
	start := parentA[0]
	if r != nil {
		start = parentA[r.Intn(n)]
	}
	child = append(child, start)
	visited[start] = true
	cur := start

	for len(child) < n {
		next, ok := pickNext(p, cur, bag, visited)
		if !ok {
			next, ok = pickFromCandidates(cand, cur, visited)
		}
		if !ok {
			next = firstUnvisited(visited)
		}
		child = append(child, next)
		visited[next] = true
		cur = next
	}
	return child
}

// edgeInfo records, for one directed neighbor relationship out of a city,
// whether both parents share it.
type edgeInfo struct {
	to     int32
	common bool
}

func buildEdgeBag(parentA, parentB []int32) [][]edgeInfo {
	n := len(parentA)
	bag := make([][]edgeInfo, n)
	add := func(u, v int32) {
		for i, e := range bag[u] {
			if e.to == v {
				bag[u][i].common = true
				return
			}
		}
		bag[u] = append(bag[u], edgeInfo{to: v})
	}
	addTour := func(tr []int32) {
		for i, c := range tr {
			nxt := tr[(i+1)%n]
			prv := tr[(i-1+n)%n]
			add(c, nxt)
			add(c, prv)
		}
	}
	addTour(parentA)
	addTour(parentB)
	return bag
}

// pickNext chooses cur's next city from its edge bag: any unvisited common
// neighbor first, else any unvisited neighbor, breaking ties by lower cost
// p.C(cur, next) and then by lowest city index for determinism.
func pickNext(p *problem.Problem, cur int32, bag [][]edgeInfo, visited []bool) (int32, bool) {
	best, bestCommon, bestCost, found := int32(-1), false, 0.0, false
	for _, e := range bag[cur] {
		if visited[e.to] {
			continue
		}
		c := p.C(int(cur), int(e.to))
		if !found || (e.common && !bestCommon) ||
			(e.common == bestCommon && (c < bestCost || (c == bestCost && e.to < best))) {
			best, bestCommon, bestCost, found = e.to, e.common, c, true
		}
	}
	return best, found
}

// pickFromCandidates falls back to cur's nearest unvisited candidate
// neighbor when its edge bag is exhausted.
func pickFromCandidates(cand *candidate.Set, cur int32, visited []bool) (int32, bool) {
	for _, e := range cand.Neighbors(int(cur)) {
		if !visited[e.To] {
			return e.To, true
		}
	}
	return -1, false
}

func firstUnvisited(visited []bool) int32 {
	for i, v := range visited {
		if !v {
			return int32(i)
		}
	}
	return -1
}
