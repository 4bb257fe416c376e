package problem

import "errors"

// Sentinel errors returned by the problem package. Callers compare with
// errors.Is; messages are kept short since they are always wrapped with
// positional context by the caller (tsplib, params).
var (
	// ErrDimensionMismatch is returned when a supplied slice or matrix does
	// not match the problem's declared dimension.
	ErrDimensionMismatch = errors.New("problem: dimension mismatch")
	// ErrNonSquare is returned when an explicit weight matrix is not n×n.
	ErrNonSquare = errors.New("problem: explicit weight matrix is not square")
	// ErrUnknownEdgeWeightType is returned for an EDGE_WEIGHT_TYPE value
	// this package does not implement a distance formula for.
	ErrUnknownEdgeWeightType = errors.New("problem: unknown edge weight type")
	// ErrMissingCoordinates is returned when a coordinate-based edge weight
	// type is selected but no NODE_COORD_SECTION was supplied.
	ErrMissingCoordinates = errors.New("problem: missing node coordinates")
	// ErrMissingMatrix is returned when EdgeWeightExplicit is selected but
	// no explicit weight matrix was supplied.
	ErrMissingMatrix = errors.New("problem: missing explicit weight matrix")
	// ErrNegativeWeight is returned when a computed or supplied edge weight
	// is negative; the solver's gain arithmetic assumes non-negative costs.
	ErrNegativeWeight = errors.New("problem: negative edge weight")
	// ErrNodeOutOfRange is returned when a 0-based node index falls outside
	// [0, Dimension).
	ErrNodeOutOfRange = errors.New("problem: node index out of range")
)
