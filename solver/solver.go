// Package solver implements the trial driver (FindTour) and outer run
// driver (Run) of original_source/SRC2/FindTour.c and
// original_source/SRC/LKHmain.c's main loop, consolidated into a single
// SolverState value per Design Notes §9 ("Process-wide state") instead of
// the original's module-level globals.
package solver

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/wuhualu185086661/LKH/ascent"
	"github.com/wuhualu185086661/LKH/candidate"
	"github.com/wuhualu185086661/LKH/construct"
	"github.com/wuhualu185086661/LKH/genetic"
	"github.com/wuhualu185086661/LKH/hashset"
	"github.com/wuhualu185086661/LKH/lk"
	"github.com/wuhualu185086661/LKH/merge"
	"github.com/wuhualu185086661/LKH/metrics"
	"github.com/wuhualu185086661/LKH/params"
	"github.com/wuhualu185086661/LKH/problem"
	"github.com/wuhualu185086661/LKH/rng"
	"github.com/wuhualu185086661/LKH/tour"
)

// State owns every piece of mutable state a solve needs, replacing the
// original program's FirstNode/Dimension/Seed/Optimum-style globals with
// one explicit value threaded through the algorithmic boundary.
type State struct {
	P      *problem.Problem
	Params params.Parameters
	Cand   *candidate.Set
	Hash   *hashset.Set
	Pool   *genetic.Pool
	Metrics *metrics.Registry

	// LowerBound and AscentNorm are ascent.Run's outputs, read once at
	// construction to decide whether the lower bound is already a tour.
	LowerBound float64
	AscentNorm int
	tree       ascent.Tree

	BestTour []int32 // open, 0-based; nil until a tour has been found
	BestCost float64

	entryTime time.Time
}

// New runs ascent and builds the candidate set (spec.md §4.10.2,
// "AllocateStructures(); CreateCandidateSet() (internally calls ascent)"),
// then returns a State ready for Run.
func New(p *problem.Problem, par params.Parameters, reg *metrics.Registry) *State {
	res := ascent.Run(p, ascent.DefaultConfig())
	cand := candidate.Create(p, res.Tree, par.MaxCandidates)

	norm := 0
	for _, d := range res.Degrees {
		dev := d - 2
		norm += dev * dev
	}

	pop := par.PopulationSize
	if pop < 1 {
		pop = 1
	}

	return &State{
		P:          p,
		Params:     par,
		Cand:       cand,
		Hash:       hashset.New(64),
		Pool:       genetic.NewPool(pop),
		Metrics:    reg,
		LowerBound: res.LowerBound,
		AscentNorm: norm,
		tree:       res.Tree,
		BestCost:   math.Inf(1),
		entryTime:  time.Now(),
	}
}

// Result summarizes a completed Run call.
type Result struct {
	BestTour []int32 // open, 0-based
	BestCost float64
	Runs     int
	Optimum  bool
}

// Run performs the outer loop of spec.md §4.10: up to Params.Runs calls to
// FindTour, population maintenance and crossover between them, stopping
// early once AscentNorm == 0 (the lower bound is already achievable) or
// once Params.StopAtOptimum is satisfied against a user-supplied Optimum.
func (s *State) Run() Result {
	runs := s.Params.Runs
	if s.AscentNorm == 0 {
		// The final 1-tree already has every degree == 2: it is a tour,
		// and the lower bound it certifies is achievable without search.
		tourSeq := onetreeTour(s.P.Dimension, s.tree)
		cost, _ := s.P.TourLength(closeTour(tourSeq))
		s.BestTour, s.BestCost = tourSeq, cost
		if s.Metrics != nil {
			s.Metrics.BestCost.Set(cost)
		}
		log.Printf("lkh: ascent norm is zero, lower bound %.2f is achievable, skipping search", s.LowerBound)
		return Result{BestTour: tourSeq, BestCost: cost, Runs: 0, Optimum: true}
	}

	seed := s.Params.Seed
	var initialOverride []int32

	for run := 1; run <= runs; run++ {
		runID := uuid.New()
		runStart := time.Now()

		tr, cost := s.findTour(run, seed, initialOverride)

		if tr == nil {
			// MaxTrials == 0: spec.md §8's boundary case, no tour to merge
			// or record for this run.
			continue
		}

		if s.Pool.Saturated() {
			tr, cost = s.tryMergeWithPopulation(tr, cost)
		} else if run > 1 && s.BestTour != nil {
			tr, cost = mergeIfCheaper(s.P, tr, s.BestTour, cost)
		}

		if cost < s.BestCost {
			s.BestTour, s.BestCost = append([]int32(nil), tr...), cost
			if s.Metrics != nil {
				s.Metrics.BestCost.Set(cost)
			}
			log.Printf("lkh: run=%s new best cost=%.2f", runID, cost)
		}

		if s.Params.Optimum != nil && cost <= *s.Params.Optimum && s.Params.StopAtOptimum {
			if s.Metrics != nil {
				s.Metrics.Runs.Inc()
				s.Metrics.RunDuration.Observe(time.Since(runStart).Seconds())
			}
			break
		}

		s.Pool.Add(tr, cost, rng.FromSeed(rng.DeriveSeed(seed, uint64(run))))

		if s.Pool.Saturated() && run < runs {
			a, b := s.Pool.Select(rng.FromSeed(rng.DeriveSeed(seed, uint64(run)+1)), 1.25)
			child := genetic.Crossover(s.P, s.Cand, s.Pool.Members[a].Tour, s.Pool.Members[b].Tour, rng.FromSeed(rng.DeriveSeed(seed, uint64(run)+2)))
			initialOverride = child
		} else {
			initialOverride = nil
		}

		if s.Metrics != nil {
			s.Metrics.Runs.Inc()
			s.Metrics.RunDuration.Observe(time.Since(runStart).Seconds())
		}

		seed = rng.DeriveSeed(seed, uint64(run)+9973) // ++Seed reseed, spec.md §4.10.i
	}

	return Result{BestTour: s.BestTour, BestCost: s.BestCost, Runs: runs, Optimum: s.Params.Optimum != nil && s.BestCost <= *s.Params.Optimum}
}

func (s *State) tryMergeWithPopulation(tr []int32, cost float64) ([]int32, float64) {
	best, bestCost := tr, cost
	for _, m := range s.Pool.Members {
		best, bestCost = mergeIfCheaper(s.P, best, m.Tour, bestCost)
	}
	return best, bestCost
}

// mergeIfCheaper recombines cur with other via the merge package and keeps
// whichever of the two resulting costs is lower.
func mergeIfCheaper(p *problem.Problem, cur, other []int32, curCost float64) ([]int32, float64) {
	merged := merge.Tours(p, cur, other)
	mc, err := p.TourLength(closeTour(merged))
	if err != nil || mc >= curCost {
		return cur, curCost
	}
	return merged, mc
}

// findTour is the trial driver of spec.md §4.8, run once per outer run.
func (s *State) findTour(run int, seed int64, initialOverride []int32) ([]int32, float64) {
	n := s.P.Dimension
	identity := make([]int32, n)
	for i := range identity {
		identity[i] = int32(i)
	}
	identityCost, _ := s.P.TourLength(closeTour(identity))

	s.Hash.Clear()
	better := math.Inf(1)
	var betterTour, secondBestTour []int32

	maxTrials := s.Params.ResolveMaxTrials(n)
	timeLimit := s.Params.ResolveTimeLimit()
	searcher := lk.New(s.P, s.Cand, lk.Config{MoveType: s.Params.MoveType, Backtracking: s.Params.Backtracking})

	for trial := 1; trial <= maxTrials; trial++ {
		// The first trial always runs, so TIME_LIMIT = 0 yields exactly one.
		if trial > 1 && time.Since(s.entryTime).Seconds() >= timeLimit {
			break
		}

		trialSeed := rng.DeriveSeed(seed, uint64(run)*1_000_003+uint64(trial))
		trialRNG := rng.FromSeed(trialSeed)

		var initial []int32
		if trial == 1 && initialOverride != nil {
			initial = initialOverride
		} else {
			initial = s.chooseInitialTour(trialRNG)
		}

		list := tour.NewList(initial)
		searcher.Optimize(list)
		cur := list.Sequence()
		cost, _ := s.P.TourLength(list.ClosedSequence())

		if betterTour != nil {
			cur, cost = mergeIfCheaper(s.P, cur, betterTour, cost)
		} else if cost > identityCost && identityCost < better {
			cur, cost = mergeIfCheaper(s.P, cur, identity, cost)
		}

		if s.Metrics != nil {
			s.Metrics.Trials.Inc()
		}

		h := hashset.Hash(closeTour(cur))
		if seenCost, ok := s.Hash.Seen(h); ok && seenCost == cost {
			continue // rediscovery of an already-seen locally optimal tour
		}
		s.Hash.Add(h, cost)

		if cost < better {
			better = cost
			secondBestTour, betterTour = betterTour, append([]int32(nil), cur...)
			if s.Metrics != nil {
				s.Metrics.BetterCost.Set(better)
			}
			s.adjustCandidateSet(betterTour, secondBestTour)
			s.Hash.Clear()
			s.Hash.Add(h, cost)

			if s.Params.Optimum != nil && s.Params.StopAtOptimum && better == *s.Params.Optimum {
				break
			}
		}
	}

	if betterTour == nil {
		return nil, math.Inf(1)
	}
	return betterTour, better
}

// adjustCandidateSet promotes cur's tour edges into the backbone list of
// every incident node, spec.md §4.3's Adjust contract. second is the
// previous best tour cur just displaced (nil on a run's first
// improvement, when there is no second-best yet); edges present in both
// cur and second are promoted ahead of edges present only in cur.
func (s *State) adjustCandidateSet(cur, second []int32) {
	n := len(cur)

	var secondPos map[int32]int
	if second != nil {
		secondPos = make(map[int32]int, len(second))
		for idx, c := range second {
			secondPos[c] = idx
		}
	}
	m := len(second)

	for i, c := range cur {
		nxt := cur[(i+1)%n]
		prv := cur[(i-1+n)%n]

		var secNxt, secPrv int32 = -1, -1
		haveSecond := false
		if idx, ok := secondPos[c]; ok {
			haveSecond = true
			secNxt = second[(idx+1)%m]
			secPrv = second[(idx-1+m)%m]
		}

		s.Cand.Adjust(int(c), [2]int32{nxt, prv}, [2]int32{secNxt, secPrv}, haveSecond, s.P)
	}
}

// chooseInitialTour dispatches to the construct package per
// Params.InitialTourAlgorithm (spec.md §4.9).
func (s *State) chooseInitialTour(r *rand.Rand) []int32 {
	switch s.Params.InitialTourAlgorithm {
	case "random":
		return construct.Random(s.P, r)
	case "nearest-neighbor", "nearest_neighbor":
		return construct.NearestNeighbor(s.P)
	case "greedy":
		return construct.Greedy(s.P)
	case "boruvka":
		return construct.Boruvka(s.P)
	default:
		return construct.Walk(s.P, r)
	}
}

func closeTour(open []int32) []int32 {
	out := make([]int32, len(open)+1)
	copy(out, open)
	out[len(open)] = open[0]
	return out
}

// onetreeTour is only reached when ascent's final 1-tree already has every
// degree == 2: its Seed-rooted spanning tree plus the root's two closing
// edges already forms a single Hamiltonian cycle, so walking that
// adjacency directly yields the tour with no search needed.
func onetreeTour(n int, t ascent.Tree) []int32 {
	adj := make([][2]int32, n)
	for i := range adj {
		adj[i] = [2]int32{-1, -1}
	}
	add := func(u, v int32) {
		if adj[u][0] < 0 {
			adj[u][0] = v
		} else {
			adj[u][1] = v
		}
	}
	for i := 0; i < n; i++ {
		// Seed has no parent entry (it's the Prim walk's arbitrary start);
		// its tree edges are already added from the other side, by
		// whichever node has Seed as its own parent.
		if i == t.Root || i == t.Seed {
			continue
		}
		add(int32(i), int32(t.Parent[i]))
		add(int32(t.Parent[i]), int32(i))
	}
	add(int32(t.Root), int32(t.M1To))
	add(int32(t.M1To), int32(t.Root))
	add(int32(t.Root), int32(t.M2To))
	add(int32(t.M2To), int32(t.Root))

	out := make([]int32, 0, n)
	visited := make([]bool, n)
	cur, prev := int32(0), int32(-1)
	for i := 0; i < n; i++ {
		out = append(out, cur)
		visited[cur] = true
		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		prev, cur = cur, next
	}
	return out
}
