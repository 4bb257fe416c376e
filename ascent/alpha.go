package ascent

import (
	"github.com/wuhualu185086661/LKH/problem"
)

// Tree captures the final 1-tree Run built, in just enough detail for
// Alpha to compute α-values against it: the MST-over-V∖{Root} parent
// pointers (rooted at Seed, an arbitrary Prim start vertex — not to be
// confused with the 1-tree's own distinguished Root), plus the two
// cheapest Root-incident edges that close the 1-tree.
type Tree struct {
	Root   int
	Seed   int
	Parent []int
	M1, M2 float64
	M1To   int
	M2To   int
}

// Alpha estimates the α-value of the non-tree edge (i,j): the increase in
// 1-tree cost forced by requiring the tree to use edge (i,j). For two
// non-root vertices this is the classical MST identity — forcing in a
// non-tree edge and dropping the heaviest edge on the tree path between
// its endpoints yields the cheapest tree containing it — so
// α(i,j) = c'(i,j) − max edge weight on the Seed-rooted tree path i⇝j.
// For an edge incident to Root, the same idea applies to the two-edge
// star at Root: forcing in a third edge means dropping the costlier of
// the two current root edges.
func Alpha(p *problem.Problem, t Tree, i, j int) float64 {
	if i == j {
		return 0
	}
	reduced := func(u, v int) float64 { return p.RawC(u, v) + p.Pi[u] + p.Pi[v] }

	if i == t.Root || j == t.Root {
		v := j
		if i != t.Root {
			v = i
		}
		if v == t.M1To || v == t.M2To {
			return 0
		}
		worse := t.M1
		if t.M2 > worse {
			worse = t.M2
		}
		a := reduced(t.Root, v) - worse
		if a < 0 {
			a = 0
		}
		return round1e9(a)
	}

	maxEdge := pathMaxEdge(t.Parent, t.Seed, i, j, reduced)
	a := reduced(i, j) - maxEdge
	if a < 0 {
		a = 0
	}
	return round1e9(a)
}

// pathMaxEdge returns the heaviest reduced-cost edge on the tree path
// between i and j within the Seed-rooted spanning tree described by
// parent. Runs in O(depth) time via a simple ancestor-marking walk — fine
// for a one-time candidate-set build, not used in any search hot loop.
func pathMaxEdge(parent []int, seed, i, j int, reduced func(u, v int) float64) float64 {
	ancestor := make(map[int]struct{})
	for cur := i; ; {
		ancestor[cur] = struct{}{}
		if cur == seed {
			break
		}
		cur = parent[cur]
	}

	var maxW float64
	lca := seed
	for cur := j; ; {
		if _, ok := ancestor[cur]; ok {
			lca = cur
			break
		}
		w := reduced(cur, parent[cur])
		if w > maxW {
			maxW = w
		}
		cur = parent[cur]
	}
	for cur := i; cur != lca; cur = parent[cur] {
		w := reduced(cur, parent[cur])
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}
