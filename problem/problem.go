// Package problem models a TSPLIB-style combinatorial-optimization instance
// and the cost oracle every other package in this repository is built
// around: C(i,j), the reduced cost of travelling from node i to node j.
//
// Nodes live in a single arena (Problem.Nodes), addressed by 0-based
// internal index; TSPLIB's 1-based identifiers are translated at the I/O
// boundary only (see the tsplib package), so nothing downstream of this
// package ever sees a 1-based index.
package problem

import "math"

// roundScale stabilizes floating costs to 1e-9 absolute precision so the
// same instance produces byte-identical results across platforms.
const roundScale = 1e9

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// Node is one arena entry. Coordinates are meaningful only when the
// problem's EdgeWeightType is coordinate-based; for EdgeWeightExplicit and
// EdgeWeightSpecial instances X/Y are left zero and never read.
type Node struct {
	X, Y float64
}

// Problem is a fully-resolved TSP instance: a node arena plus whatever the
// selected EdgeWeightType needs to turn a pair of nodes into a cost.
type Problem struct {
	// Name is the instance's NAME field, carried through for log lines and
	// tour-file output only; it has no effect on cost computation.
	Name string
	// Dimension is the number of nodes, n. Internal indices run [0, n).
	Dimension int
	// EdgeWeightType selects the distance formula or the explicit-matrix path.
	EdgeWeightType EdgeWeightType
	// Precision multiplies every reported cost (then rounded to 1e-9);
	// TSPLIB problems with fractional coordinates commonly set this to 1000
	// or similar so downstream integer gain arithmetic stays exact. A zero
	// value is treated as 1 (no scaling).
	Precision int

	Nodes []Node

	// matrix holds explicit costs when EdgeWeightType == EdgeWeightExplicit,
	// row-major, n×n. Nil otherwise.
	matrix []float64

	// Pi holds the ascent node potentials; C(i,j) returns costs already
	// reduced by Pi once ascent.Run has populated it. A nil or all-zero Pi
	// behaves as if ascent has not run yet.
	Pi []float64
}

// NewFromCoords builds a coordinate-based instance. coords must have
// length n; t must be a coordinate weight type (not Explicit or Special).
func NewFromCoords(name string, t EdgeWeightType, precision int, coords []Node) (*Problem, error) {
	switch t {
	case EdgeWeightExplicit, EdgeWeightSpecial:
		return nil, ErrUnknownEdgeWeightType
	}
	if len(coords) == 0 {
		return nil, ErrMissingCoordinates
	}
	if precision <= 0 {
		precision = 1
	}
	p := &Problem{
		Name:           name,
		Dimension:      len(coords),
		EdgeWeightType: t,
		Precision:      precision,
		Nodes:          coords,
		Pi:             make([]float64, len(coords)),
	}
	return p, nil
}

// NewFromMatrix builds an explicit-weight instance. m must be n*n,
// row-major, matching n == len(m) rows.
func NewFromMatrix(name string, n int, m []float64) (*Problem, error) {
	if n <= 0 {
		return nil, ErrDimensionMismatch
	}
	if len(m) != n*n {
		return nil, ErrNonSquare
	}
	for _, w := range m {
		if w < 0 {
			return nil, ErrNegativeWeight
		}
	}
	p := &Problem{
		Name:           name,
		Dimension:      n,
		EdgeWeightType: EdgeWeightExplicit,
		Precision:      1,
		Nodes:          make([]Node, n),
		matrix:         m,
		Pi:             make([]float64, n),
	}
	return p, nil
}

// NewSpecial builds a unit-cost HCP/HPP-style instance over an adjacency
// matrix: adj[i*n+j] nonzero means edge (i,j) exists at cost 1; zero means
// the edge is forbidden (cost +Inf).
func NewSpecial(name string, n int, adj []bool) (*Problem, error) {
	if n <= 0 {
		return nil, ErrDimensionMismatch
	}
	if len(adj) != n*n {
		return nil, ErrNonSquare
	}
	m := make([]float64, n*n)
	for i, present := range adj {
		if present {
			m[i] = 1
		} else {
			m[i] = math.Inf(1)
		}
	}
	p := &Problem{
		Name:           name,
		Dimension:      n,
		EdgeWeightType: EdgeWeightSpecial,
		Precision:      1,
		Nodes:          make([]Node, n),
		matrix:         m,
		Pi:             make([]float64, n),
	}
	return p, nil
}

// rawCost returns the unreduced, unscaled cost c(i,j) before Pi subtraction
// and Precision scaling.
func (p *Problem) rawCost(i, j int) (float64, error) {
	if i < 0 || i >= p.Dimension || j < 0 || j >= p.Dimension {
		return 0, ErrNodeOutOfRange
	}
	if p.EdgeWeightType == EdgeWeightExplicit || p.EdgeWeightType == EdgeWeightSpecial {
		if p.matrix == nil {
			return 0, ErrMissingMatrix
		}
		return p.matrix[i*p.Dimension+j], nil
	}
	a := p.Nodes[i]
	b := p.Nodes[j]
	return coordDistance(p.EdgeWeightType, a.X, a.Y, b.X, b.Y)
}

// C is the cost oracle every search/construction routine calls: the
// Precision-scaled, Pi-reduced cost of travelling i→j. Once ascent.Run has
// populated Pi, C returns c'(i,j) = Precision·c(i,j) + π_i + π_j; with a
// zero Pi it degenerates to the plain scaled cost.
//
// C(i,i) is defined to be 0 rather than erroring, matching every
// coordinate formula's natural behavior and sparing callers a self-loop
// guard in hot loops.
func (p *Problem) C(i, j int) float64 {
	if i == j {
		return 0
	}
	c, err := p.rawCost(i, j)
	if err != nil {
		// Node indices are produced internally by tour/candidate/construct
		// packages and are always in range; an out-of-range index here is a
		// programming error, not a user-input condition.
		panic(err)
	}
	scaled := c * float64(p.precisionOrOne())
	if p.Pi != nil {
		scaled += p.Pi[i] + p.Pi[j]
	}
	return round1e9(scaled)
}

func (p *Problem) precisionOrOne() int {
	if p.Precision <= 0 {
		return 1
	}
	return p.Precision
}

// RawC returns the Precision-scaled cost without Pi reduction — the
// quantity tour-cost reporting and the final answer need, since Pi is an
// algorithmic device with no meaning to the user.
func (p *Problem) RawC(i, j int) float64 {
	if i == j {
		return 0
	}
	c, err := p.rawCost(i, j)
	if err != nil {
		panic(err)
	}
	return round1e9(c * float64(p.precisionOrOne()))
}

// TourLength sums RawC along a closed tour (len n+1, tour[0]==tour[n]).
func (p *Problem) TourLength(tour []int32) (float64, error) {
	if len(tour) != p.Dimension+1 {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := 0; i < p.Dimension; i++ {
		u, v := int(tour[i]), int(tour[i+1])
		if u < 0 || u >= p.Dimension || v < 0 || v >= p.Dimension {
			return 0, ErrNodeOutOfRange
		}
		sum += p.RawC(u, v)
	}
	return round1e9(sum), nil
}

// ResetPi zeroes the ascent potentials, returning the oracle to raw costs.
func (p *Problem) ResetPi() {
	for i := range p.Pi {
		p.Pi[i] = 0
	}
}
