// Package lk implements sequential k-opt local search over the two-level
// tour representation, restricted at every step to each city's α-ranked
// candidate neighborhood. It is grounded on tsp/two_opt.go and
// tsp/three_opt.go's control-flow shape — deterministic first-improvement
// scanning, eps-gated acceptance, round1e9 cost stabilization — generalized
// from their fixed-depth array-scan moves to a candidate-driven chain of
// tour.List flips with depth-bounded backtracking, in the style the teacher
// reserves for its local-search engines rather than its exact solvers.
package lk

import (
	"github.com/wuhualu185086661/LKH/candidate"
	"github.com/wuhualu185086661/LKH/problem"
	"github.com/wuhualu185086661/LKH/tour"
)

const (
	roundScale = 1e9
	eps        = 1.0 / roundScale
)

// Config bounds how deep and how wide the sequential search explores.
type Config struct {
	// MoveType caps the number of edges exchanged in one sequential move
	// (2..5, mirroring params.Parameters.MoveType).
	MoveType int
	// Backtracking caps how many candidate branches are tried per level
	// before giving up on that level and backing out.
	Backtracking int
}

// DefaultConfig mirrors params.Default()'s MoveType of 5 with a modest
// branching factor, matching the teacher's preference for a small constant
// fan-out in local search rather than an exhaustive scan.
func DefaultConfig() Config {
	return Config{MoveType: 5, Backtracking: 5}
}

// Searcher runs sequential k-opt moves over a shared tour.List, restricted
// to a candidate.Set's neighborhoods.
type Searcher struct {
	p    *problem.Problem
	cand *candidate.Set
	cfg  Config
}

// New builds a Searcher restricted to the neighborhoods in cand, under
// cost oracle p; the tour.List it works on is passed to Optimize.
func New(p *problem.Problem, cand *candidate.Set, cfg Config) *Searcher {
	if cfg.MoveType < 2 {
		cfg.MoveType = 2
	}
	if cfg.MoveType > 5 {
		cfg.MoveType = 5
	}
	if cfg.Backtracking < 1 {
		cfg.Backtracking = 1
	}
	return &Searcher{p: p, cand: cand, cfg: cfg}
}

// Optimize repeatedly applies improving sequential moves anchored at each
// city in turn until a full pass finds none, i.e. t is 2..MoveType-opt
// local-optimal with respect to the candidate neighborhoods. It returns the
// number of moves actually applied.
func (s *Searcher) Optimize(t *tour.List) int {
	applied := 0
	n := t.Len()
	improvedAny := true
	for improvedAny {
		improvedAny = false
		for c := int32(0); c < int32(n); c++ {
			if s.improveFrom(t, c) {
				improvedAny = true
				applied++
			}
		}
	}
	return applied
}

// improveFrom tries both directions of the edge incident to anchor t1,
// returning true and leaving an improving chain of flips applied to t if it
// found one. Each direction gets its own best-gain tracker and its own
// added/removed edge sets, shared by pointer down the whole recursive chain
// so a deeper level can out-rank a shallower one and no edge broken or
// rejoined earlier in the chain is re-touched later in it.
func (s *Searcher) improveFrom(t *tour.List, t1 int32) bool {
	if s.forward(t, t1, t.Next(t1), 0, 0, new(float64), make(edgeSet), make(edgeSet)) {
		return true
	}
	if s.backward(t, t1, t.Prev(t1), 0, 0, new(float64), make(edgeSet), make(edgeSet)) {
		return true
	}
	return false
}

// edgeSet tracks the unordered edges added or removed so far in one move
// chain, so a later depth can be rejected for re-adding an edge just removed
// or re-removing an edge just added.
type edgeSet map[[2]int32]bool

func edgeKey(a, b int32) [2]int32 {
	if a > b {
		a, b = b, a
	}
	return [2]int32{a, b}
}

func (es edgeSet) has(a, b int32) bool { return es[edgeKey(a, b)] }
func (es edgeSet) push(a, b int32)     { es[edgeKey(a, b)] = true }
func (es edgeSet) pop(a, b int32)      { delete(es, edgeKey(a, b)) }

// forward explores the chain where cur is always the current Next(t1): at
// each level a candidate t3 of cur is chosen, t4 := Prev(t3), and
// Flip(cur, t4) both breaks (t1,cur)/(t3,t4) and adds (t1,t4)/(cur,t3) in one
// tour.List operation, after which t4 becomes the new Next(t1) and the chain
// continues from there. Deeper levels are always tried before this level
// settles for its own gain, and a move is only kept once its cumulative gain
// exceeds both eps and bestGain, the best cumulative gain any level of this
// chain has committed to so far.
//
// removedSet/addedSet track only the "far" edge pair each level removes and
// adds, (t3,t4) and (cur,t3): the anchor edge between t1 and the chain's
// current loose end, (t1,cur) removed / (t1,t4) added, is rebuilt at every
// level by construction (t1,t4) of this level always becomes (t1,cur) of
// the next) and deliberately isn't tracked, or every level past the first
// would exclude itself.
func (s *Searcher) forward(t *tour.List, t1, cur int32, depth int, gain float64, bestGain *float64, removedSet, addedSet edgeSet) bool {
	tried := 0
	for _, e := range s.cand.Neighbors(int(cur)) {
		if tried >= s.cfg.Backtracking {
			break
		}
		t3 := e.To
		if t3 == t1 || t3 == cur {
			continue
		}
		t4 := t.Prev(t3)
		if t4 == cur || t4 == t1 {
			continue
		}
		if addedSet.has(t3, t4) {
			continue
		}
		if removedSet.has(cur, t3) || removedSet.has(t1, t4) {
			continue
		}
		tried++

		removedCost := s.p.C(int(t1), int(cur)) + s.p.C(int(t3), int(t4))
		addedCost := e.Cost + s.p.C(int(t1), int(t4))
		delta := removedCost - addedCost
		newGain := gain + delta

		t.Flip(cur, t4)
		removedSet.push(t3, t4)
		addedSet.push(cur, t3)

		if depth+1 < s.cfg.MoveType-1 && s.forward(t, t1, t4, depth+1, newGain, bestGain, removedSet, addedSet) {
			return true
		}
		if newGain > eps && newGain > *bestGain {
			*bestGain = newGain
			return true
		}

		removedSet.pop(t3, t4)
		addedSet.pop(cur, t3)
		t.Flip(t4, cur)
	}
	return false
}

// backward is forward's mirror image: cur is always the current Prev(t1).
// A candidate t3 of cur is chosen, t4 := Next(t3), and Flip(t1, t3) breaks
// (cur,t1)/(t3,t4) and adds (cur,t3)/(t1,t4); the chain continues from the
// pre-flip Prev(t3), which becomes the new Prev(t1) after the flip. Same
// deeper-first, best-gain-so-far acceptance and far-edge-only chain
// exclusion as forward.
func (s *Searcher) backward(t *tour.List, t1, cur int32, depth int, gain float64, bestGain *float64, removedSet, addedSet edgeSet) bool {
	tried := 0
	for _, e := range s.cand.Neighbors(int(cur)) {
		if tried >= s.cfg.Backtracking {
			break
		}
		t3 := e.To
		if t3 == t1 || t3 == cur {
			continue
		}
		t4 := t.Next(t3)
		if t4 == cur || t4 == t1 {
			continue
		}
		if addedSet.has(t3, t4) {
			continue
		}
		if removedSet.has(cur, t3) || removedSet.has(t1, t4) {
			continue
		}
		nextCur := t.Prev(t3)
		tried++

		removedCost := s.p.C(int(t1), int(cur)) + s.p.C(int(t3), int(t4))
		addedCost := e.Cost + s.p.C(int(t1), int(t4))
		delta := removedCost - addedCost
		newGain := gain + delta

		t.Flip(t1, t3)
		removedSet.push(t3, t4)
		addedSet.push(cur, t3)

		if depth+1 < s.cfg.MoveType-1 && s.backward(t, t1, nextCur, depth+1, newGain, bestGain, removedSet, addedSet) {
			return true
		}
		if newGain > eps && newGain > *bestGain {
			*bestGain = newGain
			return true
		}

		removedSet.pop(t3, t4)
		addedSet.pop(cur, t3)
		t.Flip(t3, t1)
	}
	return false
}
