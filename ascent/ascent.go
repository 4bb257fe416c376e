// Package ascent computes the Held–Karp 1-tree lower bound and drives the
// subgradient loop that turns it into the node potentials (problem.Pi)
// every other package's cost oracle reads. It also exposes Alpha, the
// per-edge sensitivity value the candidate package ranks on.
//
// The 1-tree construction itself — Prim's algorithm over V∖{root} plus the
// two cheapest root-incident edges, with deterministic index tie-breaking —
// follows the teacher's bound_onetree.go almost directly; what's new here
// is that the subgradient step policy is a stagnation-driven schedule (the
// period grows by one per improving round; a full period without
// improvement resets it to 1 and halves the step) applied to a 0.7/0.3
// blend of the current and previous subgradient, rather than an
// incumbent-driven Held–Karp step, and the loop's job is to leave Pi
// populated on Problem rather than to return a bound value to a caller.
package ascent

import (
	"math"

	"github.com/wuhualu185086661/LKH/problem"
)

// Config controls the subgradient loop.
type Config struct {
	// MaxIterations bounds the number of 1-tree + subgradient-step rounds.
	MaxIterations int
	// InitialStep is t0, the starting step multiplier.
	InitialStep float64
}

// DefaultConfig mirrors the LKH-style recipe: start with a fairly large
// step and let the period/step-halving schedule adapt it.
func DefaultConfig() Config {
	return Config{MaxIterations: 50, InitialStep: 1}
}

// Result reports what the ascent loop found.
type Result struct {
	// LowerBound is the best L(π) observed, Precision-scaled like every
	// other cost in this repository.
	LowerBound float64
	// Degrees holds the final 1-tree's vertex degrees, useful for deciding
	// whether the bound is already a tour (all degrees == 2).
	Degrees []int
	// Iterations is the number of rounds actually performed.
	Iterations int
	// Tree is the final 1-tree's structure, consumed by Alpha.
	Tree Tree
}

// Run performs the subgradient ascent rooted at node 0 and leaves the
// result directly in p.Pi (overwriting any prior value). It returns the
// best lower bound found and the final 1-tree degrees.
func Run(p *problem.Problem, cfg Config) Result {
	n := p.Dimension
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 1
	}
	if cfg.InitialStep <= 0 {
		cfg.InitialStep = 1
	}
	p.ResetPi()

	eng := &engine{n: n, p: p, pi: make([]float64, n), deg: make([]int, n), parent: make([]int, n), key: make([]float64, n), inTree: make([]bool, n)}

	var (
		bestLB     = math.Inf(-1)
		step       = cfg.InitialStep
		period     = 1
		sinceImpr  int
		lastBound  float64
		iterations int
		prevV      = make([]float64, n)
	)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations++
		cost := eng.buildOneTree()

		var sumPi float64
		for _, v := range eng.pi {
			sumPi += v
		}
		lastBound = cost - 2*sumPi
		if lastBound > bestLB {
			bestLB = lastBound
			sinceImpr = 0
		} else {
			sinceImpr++
		}

		var norm2 float64
		allSatisfied := true
		for i := 0; i < n; i++ {
			d := eng.deg[i] - 2
			norm2 += float64(d * d)
			if d != 0 {
				allSatisfied = false
			}
		}
		if allSatisfied {
			break
		}

		// Period doubling/halving: lengthen the period while improving,
		// shorten it and shrink the step on stagnation — the standard
		// Held–Karp schedule absent an incumbent upper bound to drive an
		// adaptive step size directly.
		if sinceImpr == 0 {
			period++
		} else if sinceImpr >= period {
			period = 1
			step /= 2
			sinceImpr = 0
		}
		if step <= 1e-12 {
			break
		}

		for i := 0; i < n; i++ {
			v := float64(eng.deg[i] - 2)
			eng.pi[i] += step * (0.7*v + 0.3*prevV[i])
			prevV[i] = v
		}
	}

	copy(p.Pi, eng.pi)
	outDeg := make([]int, n)
	copy(outDeg, eng.deg)
	parent := make([]int, n)
	copy(parent, eng.parent)
	tree := Tree{
		Root:   root,
		Seed:   eng.seed,
		Parent: parent,
		M1:     eng.m1,
		M2:     eng.m2,
		M1To:   eng.m1To,
		M2To:   eng.m2To,
	}
	return Result{LowerBound: round1e9(bestLB), Degrees: outDeg, Iterations: iterations, Tree: tree}
}

const root = 0

// engine holds mutable Prim-over-(V∖{root}) state, reused across iterations
// to avoid per-iteration allocation.
type engine struct {
	n      int
	p      *problem.Problem
	pi     []float64
	deg    []int
	inTree []bool
	parent []int
	key    []float64

	seed         int
	m1, m2       float64
	m1To, m2To   int
}

func (e *engine) reduced(u, v int) float64 {
	return e.p.RawC(u, v) + e.pi[u] + e.pi[v]
}

// buildOneTree constructs the minimum 1-tree on reduced costs and returns
// its total reduced cost, filling e.deg as a side effect.
func (e *engine) buildOneTree() float64 {
	inf := math.Inf(1)
	for i := range e.deg {
		e.deg[i] = 0
	}
	for v := 0; v < e.n; v++ {
		e.inTree[v] = false
		e.parent[v] = -1
		e.key[v] = inf
	}

	start := 0
	if start == root {
		start = 1
	}
	e.seed = start
	if e.n <= 1 {
		return 0
	}
	e.key[start] = 0

	var total float64
	for iter := 0; iter < e.n-1; iter++ {
		best := -1
		for v := 0; v < e.n; v++ {
			if v == root || e.inTree[v] {
				continue
			}
			if best == -1 || e.key[v] < e.key[best] || (e.key[v] == e.key[best] && v < best) {
				best = v
			}
		}
		if best == -1 || math.IsInf(e.key[best], 0) {
			// Disconnected V∖{root}: leave the 1-tree incomplete rather than
			// panicking — Pi simply stops improving and the caller's degree
			// check will never see all-twos, which is an acceptable outcome
			// for this algorithmic interior (see error-handling design).
			break
		}
		e.inTree[best] = true
		if e.parent[best] != -1 {
			u := e.parent[best]
			total += e.reduced(best, u)
			e.deg[best]++
			e.deg[u]++
		}
		for v := 0; v < e.n; v++ {
			if v == root || e.inTree[v] || v == best {
				continue
			}
			c := e.reduced(best, v)
			if c < e.key[v] {
				e.key[v] = c
				e.parent[v] = best
			}
		}
	}

	// Two cheapest root edges by reduced cost.
	m1, m2 := inf, inf
	m1To, m2To := -1, -1
	for v := 0; v < e.n; v++ {
		if v == root {
			continue
		}
		c := e.reduced(root, v)
		if c < m1 || (c == m1 && v < m1To) {
			m2, m2To = m1, m1To
			m1, m1To = c, v
		} else if c < m2 || (c == m2 && v < m2To) {
			m2, m2To = c, v
		}
	}
	if m1To != -1 {
		total += m1
		e.deg[root]++
		e.deg[m1To]++
	}
	if m2To != -1 {
		total += m2
		e.deg[root]++
		e.deg[m2To]++
	}
	e.m1, e.m2, e.m1To, e.m2To = m1, m2, m1To, m2To

	return total
}

const roundScale = 1e9

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
