package tsplib

import "errors"

// Sentinel errors for TSPLIB95 problem- and tour-file parsing. Errors
// found on a specific line are wrapped with that line number via
// fmt.Errorf("line %d: %w", ...); errors detected only after the whole
// file has been read (a missing DIMENSION or EDGE_WEIGHT_TYPE, missing
// coordinates, a tour of the wrong length) are returned unwrapped.
var (
	ErrMissingDimension   = errors.New("tsplib: missing DIMENSION")
	ErrMissingEdgeWeight   = errors.New("tsplib: missing EDGE_WEIGHT_TYPE")
	ErrUnknownKeyword      = errors.New("tsplib: unknown keyword")
	ErrUnknownSection      = errors.New("tsplib: unknown section")
	ErrMalformedLine       = errors.New("tsplib: malformed line")
	ErrTourDimensionMismatch = errors.New("tsplib: tour dimension does not match problem")
	ErrUnexpectedEOF       = errors.New("tsplib: unexpected end of file")
)
