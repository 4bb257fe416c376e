// Package construct builds the initial tour a trial's local search starts
// from. Each constructor returns an open tour (a permutation of [0,
// p.Dimension)) suitable for tour.NewList.
//
// NearestNeighbor and Random are grounded on tsp/solve.go's trivialRing
// fallback and tsp/rng.go's permRange/shuffleIntsInPlace, lifted into the
// rng package so construct and genetic can share one seeding contract.
// Greedy generalizes tsp/matching.go's greedyMatch nearest-remaining-
// partner loop from unconstrained pairing to degree-2-constrained edge
// selection with union-find cycle avoidance. Boruvka generalizes
// prim_kruskal/kruskal.go's union-find plus tsp/mst.go's Prim-growth shape
// from single-root growth to Boruvka's parallel multi-component edge
// contraction, then walks the resulting spanning tree in DFS preorder to
// linearize it into a tour.
package construct

import (
	"math/rand"
	"sort"

	"github.com/wuhualu185086661/LKH/problem"
	"github.com/wuhualu185086661/LKH/rng"
)

// Random returns a uniformly random permutation of the problem's cities.
func Random(p *problem.Problem, r *rand.Rand) []int32 {
	return rng.PermInt32(p.Dimension, r)
}

// Walk builds a tour by repeatedly stepping to the nearest unvisited city
// among a small random sample of the remaining cities, starting from a
// randomly chosen city — a randomized relative of NearestNeighbor that
// gives successive trials distinct starting tours without the cost of a
// fully exhaustive nearest-city scan at every step.
func Walk(p *problem.Problem, r *rand.Rand) []int32 {
	n := p.Dimension
	if r == nil {
		r = rng.FromSeed(0)
	}
	const sampleSize = 8

	remaining := rng.PermInt32(n, r)
	tour := make([]int32, 0, n)
	cur := remaining[0]
	tour = append(tour, cur)
	remaining = remaining[1:]

	for len(remaining) > 0 {
		k := sampleSize
		if k > len(remaining) {
			k = len(remaining)
		}
		best, bestCost := -1, 0.0
		for i := 0; i < k; i++ {
			j := r.Intn(len(remaining))
			c := p.RawC(int(cur), int(remaining[j]))
			if best < 0 || c < bestCost {
				best, bestCost = j, c
			}
		}
		cur = remaining[best]
		tour = append(tour, cur)
		remaining[best] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return tour
}

// NearestNeighbor builds a tour by always stepping to the closest unvisited
// city, starting from city 0.
func NearestNeighbor(p *problem.Problem) []int32 {
	n := p.Dimension
	visited := make([]bool, n)
	tour := make([]int32, 0, n)

	cur := int32(0)
	visited[0] = true
	tour = append(tour, cur)

	for len(tour) < n {
		best, bestCost := int32(-1), 0.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			c := p.RawC(int(cur), j)
			if best < 0 || c < bestCost {
				best, bestCost = int32(j), c
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cur = best
	}
	return tour
}

// Greedy builds a tour by repeatedly adding the globally cheapest edge that
// keeps every city at degree <= 2 and doesn't close a cycle shorter than a
// full tour, using union-find exactly as prim_kruskal/kruskal.go does for
// MST cycle avoidance.
func Greedy(p *problem.Problem) []int32 {
	n := p.Dimension
	type edge struct {
		u, v int32
		cost float64
	}
	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{int32(i), int32(j), p.RawC(i, j)})
		}
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].cost < edges[b].cost })

	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	var find func(int32) int32
	find = func(x int32) int32 {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int32) { parent[find(a)] = find(b) }

	degree := make([]int, n)
	adj := make([][2]int32, n)
	for i := range adj {
		adj[i] = [2]int32{-1, -1}
	}
	addAdj := func(u, v int32) {
		if adj[u][0] < 0 {
			adj[u][0] = v
		} else {
			adj[u][1] = v
		}
	}

	edgesAdded := 0
	for _, e := range edges {
		if edgesAdded == n {
			break
		}
		if degree[e.u] >= 2 || degree[e.v] >= 2 {
			continue
		}
		ru, rv := find(e.u), find(e.v)
		if ru == rv && edgesAdded != n-1 {
			// Closing a sub-cycle before every city has degree 2 would strand
			// the rest of the graph; skip until it's the final closing edge.
			continue
		}
		union(e.u, e.v)
		degree[e.u]++
		degree[e.v]++
		addAdj(e.u, e.v)
		addAdj(e.v, e.u)
		edgesAdded++
	}

	// Any city left at degree < 2 (possible when the greedy scan starves a
	// vertex) is patched by chaining the remaining open endpoints in order.
	var ends []int32
	for i := 0; i < n; i++ {
		for degree[i] < 2 {
			ends = append(ends, int32(i))
			degree[i]++
		}
	}
	for len(ends) >= 2 {
		u := ends[0]
		matched := -1
		for i := 1; i < len(ends); i++ {
			if v := ends[i]; v != u && find(v) != find(u) {
				matched = i
				break
			}
		}
		if matched < 0 {
			break
		}
		v := ends[matched]
		union(u, v)
		addAdj(u, v)
		addAdj(v, u)
		ends = append(ends[1:matched], ends[matched+1:]...)
	}

	return walkAdjacency(adj, n)
}

// walkAdjacency linearizes a degree-2 adjacency structure (every city has
// exactly two neighbors, forming a single cycle) into an open tour.
func walkAdjacency(adj [][2]int32, n int) []int32 {
	tour := make([]int32, 0, n)
	visited := make([]bool, n)
	cur, prev := int32(0), int32(-1)
	for i := 0; i < n; i++ {
		tour = append(tour, cur)
		visited[cur] = true
		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		if next < 0 || visited[next] {
			// Disconnected remainder (can happen if Greedy's patch pass left
			// more than one cycle); append whatever is left in index order.
			for j := 0; j < n; j++ {
				if !visited[int32(j)] {
					tour = append(tour, int32(j))
					visited[j] = true
				}
			}
			break
		}
		prev, cur = cur, next
	}
	return tour
}

// Boruvka builds a minimum spanning tree via Boruvka's algorithm (every
// component picks its cheapest outgoing edge in parallel, all such edges
// are contracted at once, repeat until one component remains), then reads
// off an initial tour as the tree's DFS preorder.
func Boruvka(p *problem.Problem) []int32 {
	n := p.Dimension
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	var find func(int32) int32
	find = func(x int32) int32 {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	adj := make([][]int32, n)
	components := n
	for components > 1 {
		cheapest := make(map[int32]struct {
			u, v int32
			cost float64
		})
		for u := 0; u < n; u++ {
			ru := find(int32(u))
			for v := 0; v < n; v++ {
				if u == v {
					continue
				}
				rv := find(int32(v))
				if ru == rv {
					continue
				}
				c := p.RawC(u, v)
				if cur, ok := cheapest[ru]; !ok || c < cur.cost {
					cheapest[ru] = struct {
						u, v int32
						cost float64
					}{int32(u), int32(v), c}
				}
			}
		}
		for _, e := range cheapest {
			ru, rv := find(e.u), find(e.v)
			if ru == rv {
				continue
			}
			parent[ru] = rv
			adj[e.u] = append(adj[e.u], e.v)
			adj[e.v] = append(adj[e.v], e.u)
			components--
		}
	}

	tour := make([]int32, 0, n)
	visited := make([]bool, n)
	var dfs func(c int32)
	dfs = func(c int32) {
		visited[c] = true
		tour = append(tour, c)
		for _, nb := range adj[c] {
			if !visited[nb] {
				dfs(nb)
			}
		}
	}
	dfs(0)
	return tour
}
