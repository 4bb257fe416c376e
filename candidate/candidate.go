// Package candidate builds and maintains each node's α-ranked candidate
// edge list, the fixed neighborhood the lk package's sequential search is
// restricted to. K-smallest selection uses a bounded max-heap exactly the
// way the teacher's prim_kruskal package uses container/heap for its own
// priority extraction, generalized from "smallest MST frontier edge" to
// "K smallest candidate edges per node."
package candidate

import (
	"container/heap"
	"sort"

	"github.com/wuhualu185086661/LKH/ascent"
	"github.com/wuhualu185086661/LKH/problem"
)

// Edge is one candidate: a neighbor To, ranked by Alpha (lower is better),
// with Cost cached so lk doesn't have to call back into the cost oracle
// for every candidate scan.
type Edge struct {
	To    int32
	Alpha float64
	Cost  float64
}

// Set holds, per node, a base α-ranked candidate list plus the backbone
// promotions recorded after a new best tour is found (spec.md's
// BackboneTrials mechanism — see DESIGN.md's Open Question decision).
// Backbone promotions are split into Common (edges present in both the
// current best and second-best tours) and Backbone (present in only one),
// so Neighbors can hand out Common edges first per spec.md's precedence
// guarantee.
type Set struct {
	N          int
	Lists      [][]Edge
	Common     [][]Edge
	Backbone   [][]Edge
	MaxPerNode int
}

// Create builds the base candidate set: for every node, the k smallest-α
// edges to every other node, under the final 1-tree ascent.Run produced.
func Create(p *problem.Problem, tree ascent.Tree, k int) *Set {
	n := p.Dimension
	if k <= 0 {
		k = 1
	}
	s := &Set{N: n, Lists: make([][]Edge, n), Common: make([][]Edge, n), Backbone: make([][]Edge, n), MaxPerNode: k}
	for i := 0; i < n; i++ {
		s.Lists[i] = kSmallestAlpha(p, tree, i, k)
	}
	return s
}

// kSmallestAlpha selects the k smallest-α edges out of node i, using a
// bounded max-heap: once the heap holds k candidates, a new candidate only
// displaces the current worst (heap root) when it is strictly better.
func kSmallestAlpha(p *problem.Problem, tree ascent.Tree, i, k int) []Edge {
	h := &candHeap{}
	heap.Init(h)
	for j := 0; j < p.Dimension; j++ {
		if j == i {
			continue
		}
		a := ascent.Alpha(p, tree, i, j)
		e := Edge{To: int32(j), Alpha: a, Cost: p.C(i, j)}
		if h.Len() < k {
			heap.Push(h, e)
		} else if a < (*h)[0].Alpha {
			heap.Pop(h)
			heap.Push(h, e)
		}
	}
	list := make([]Edge, h.Len())
	copy(list, *h)
	sort.Slice(list, func(a, b int) bool { return list[a].Alpha < list[b].Alpha })
	return list
}

// Extend appends one more candidate edge to node i's base list if it is
// not already present, keeping the list sorted by Alpha.
func (s *Set) Extend(i int, e Edge) {
	for _, existing := range s.Lists[i] {
		if existing.To == e.To {
			return
		}
	}
	s.Lists[i] = append(s.Lists[i], e)
	sort.Slice(s.Lists[i], func(a, b int) bool { return s.Lists[i][a].Alpha < s.Lists[i][b].Alpha })
}

// Reset clears every node's backbone promotion, returning the set to its
// base α-ranked lists only.
func (s *Set) Reset() {
	for i := range s.Backbone {
		s.Common[i] = nil
		s.Backbone[i] = nil
	}
}

// Adjust records the two tour-edges incident to node i in the current best
// tour, called after a new best tour is found so the next several trials'
// search preferentially re-examines the edges that produced it. second is
// the matching pair of edges incident to i in the second-best tour (the
// tour the new best just displaced); haveSecond is false on the very first
// best tour of a run, when there is nothing yet to compare against.
//
// Per spec.md's Adjust contract: after the call, both best neighbors are
// present in node i's candidates, and any edge present in both the best
// and second-best tours precedes edges present in only one — so an edge
// already filed under Common never gets re-filed under Backbone, and an
// edge discovered to be common is moved out of Backbone into Common.
func (s *Set) Adjust(i int, best [2]int32, second [2]int32, haveSecond bool, p *problem.Problem) {
	for _, to := range best {
		if haveSecond && (to == second[0] || to == second[1]) {
			s.promoteCommon(i, to, p)
		} else {
			s.promoteBackbone(i, to, p)
		}
	}
}

func (s *Set) promoteCommon(i int, to int32, p *problem.Problem) {
	for _, e := range s.Common[i] {
		if e.To == to {
			return
		}
	}
	for idx, e := range s.Backbone[i] {
		if e.To == to {
			s.Backbone[i] = append(s.Backbone[i][:idx], s.Backbone[i][idx+1:]...)
			break
		}
	}
	s.Common[i] = append(s.Common[i], Edge{To: to, Cost: p.C(i, int(to))})
}

func (s *Set) promoteBackbone(i int, to int32, p *problem.Problem) {
	for _, e := range s.Common[i] {
		if e.To == to {
			return // already holds the stronger common-edge guarantee
		}
	}
	for _, e := range s.Backbone[i] {
		if e.To == to {
			return
		}
	}
	s.Backbone[i] = append(s.Backbone[i], Edge{To: to, Cost: p.C(i, int(to))})
}

// Neighbors returns node i's search neighborhood: common-tour backbone
// promotions first, then single-tour backbone promotions, then the base
// candidate list, so callers scan in spec.md's required precedence order
// without needing three separate loops at every call site.
func (s *Set) Neighbors(i int) []Edge {
	if len(s.Common[i]) == 0 && len(s.Backbone[i]) == 0 {
		return s.Lists[i]
	}
	out := make([]Edge, 0, len(s.Common[i])+len(s.Backbone[i])+len(s.Lists[i]))
	out = append(out, s.Common[i]...)
	out = append(out, s.Backbone[i]...)
	out = append(out, s.Lists[i]...)
	return out
}

// candHeap is a max-heap over Edge.Alpha, letting kSmallestAlpha evict its
// current worst member in O(log k) when a better candidate appears.
type candHeap []Edge

func (h candHeap) Len() int            { return len(h) }
func (h candHeap) Less(i, j int) bool  { return h[i].Alpha > h[j].Alpha }
func (h candHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candHeap) Push(x interface{}) { *h = append(*h, x.(Edge)) }
func (h *candHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
