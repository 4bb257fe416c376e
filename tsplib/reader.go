// Package tsplib reads and writes the TSPLIB95 problem- and tour-file
// formats described in the external-interfaces section of the design: a
// line-oriented `KEY = VALUE` header followed by one or more
// `SOME_SECTION` blocks, terminated by `EOF`.
//
// No third-party parsing library is used here: TSPLIB's format predates
// and has no relationship to YAML/TOML/INI, and nothing in the example
// corpus models a comparable bespoke grammar, so this package is a
// hand-written bufio.Scanner line parser in the staged, sentinel-error
// validation style the rest of this repository follows.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wuhualu185086661/LKH/problem"
)

// ReadProblem parses a TSPLIB95 problem file from r into a *problem.Problem.
func ReadProblem(r io.Reader) (*problem.Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		name           string
		dimension      int
		precision      = 1
		haveDimension  bool
		edgeWeightType problem.EdgeWeightType
		haveEWT        bool
		edgeWeightFmt  string
		coords         []problem.Node
		haveCoords     bool
		matrix         []float64
		haveMatrix     bool
		lineNo         int
	)

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "COMMENT") {
			continue
		}
		if line == "EOF" {
			break
		}

		switch {
		case strings.Contains(line, ":"):
			key, val, err := splitKeyValue(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			switch key {
			case "NAME":
				name = val
			case "DIMENSION":
				dimension, err = strconv.Atoi(val)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
				}
				haveDimension = true
			case "EDGE_WEIGHT_TYPE":
				edgeWeightType, err = problem.ParseEdgeWeightType(val)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				haveEWT = true
			case "EDGE_WEIGHT_FORMAT":
				edgeWeightFmt = val
			case "PRECISION":
				precision, err = strconv.Atoi(val)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
				}
			case "TYPE", "COMMENT", "CAPACITY":
				// Carried for completeness; no effect on cost computation.
			default:
				return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownKeyword, key)
			}

		case line == "NODE_COORD_SECTION":
			if !haveDimension {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingDimension)
			}
			coords = make([]problem.Node, dimension)
			for i := 0; i < dimension; i++ {
				if !sc.Scan() {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrUnexpectedEOF)
				}
				lineNo++
				idx, x, y, err := parseCoordLine(sc.Text())
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if idx < 1 || idx > dimension {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
				}
				coords[idx-1] = problem.Node{X: x, Y: y}
			}
			haveCoords = true

		case line == "EDGE_WEIGHT_SECTION":
			if !haveDimension {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingDimension)
			}
			var err error
			matrix, lineNo, err = readEdgeWeightSection(sc, dimension, edgeWeightFmt, lineNo)
			if err != nil {
				return nil, err
			}
			haveMatrix = true

		case line == "DEPOT_SECTION" || line == "FIXED_EDGES_SECTION":
			// Recognized but irrelevant to cost computation (spec.md §6):
			// CVRP depot ids / HCP-style fixed edges, each terminated by a
			// lone "-1" line.
			var err error
			lineNo, err = skipUntilSentinel(sc, lineNo)
			if err != nil {
				return nil, err
			}

		case line == "DEMAND_SECTION":
			if !haveDimension {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingDimension)
			}
			var err error
			lineNo, err = skipLines(sc, dimension, lineNo)
			if err != nil {
				return nil, err
			}

		case strings.HasSuffix(line, "_SECTION"):
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownSection, line)

		default:
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !haveDimension {
		return nil, ErrMissingDimension
	}
	if !haveEWT {
		return nil, ErrMissingEdgeWeight
	}

	switch edgeWeightType {
	case problem.EdgeWeightExplicit:
		if !haveMatrix {
			return nil, fmt.Errorf("%w", ErrMalformedLine)
		}
		return problem.NewFromMatrix(name, dimension, matrix)
	case problem.EdgeWeightSpecial:
		if !haveMatrix {
			adj := make([]bool, dimension*dimension)
			for i := range adj {
				adj[i] = true
			}
			return problem.NewSpecial(name, dimension, adj)
		}
		adj := make([]bool, len(matrix))
		for i, w := range matrix {
			adj[i] = w != 0
		}
		return problem.NewSpecial(name, dimension, adj)
	default:
		if !haveCoords {
			return nil, problem.ErrMissingCoordinates
		}
		return problem.NewFromCoords(name, edgeWeightType, precision, coords)
	}
}

// splitKeyValue splits a "KEY : VALUE" or "KEY = VALUE" line, trimming
// whitespace around both halves.
func splitKeyValue(line string) (key, val string, err error) {
	sep := ":"
	if !strings.Contains(line, sep) {
		sep = "="
	}
	parts := strings.SplitN(line, sep, 2)
	if len(parts) != 2 {
		return "", "", ErrMalformedLine
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// parseCoordLine parses one "idx x y" line of a NODE_COORD_SECTION.
func parseCoordLine(line string) (idx int, x, y float64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, 0, ErrMalformedLine
	}
	idx, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, ErrMalformedLine
	}
	x, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, 0, ErrMalformedLine
	}
	y, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, ErrMalformedLine
	}
	return idx, x, y, nil
}

// skipUntilSentinel discards lines up to and including the next line that
// is exactly "-1", the terminator DEPOT_SECTION and FIXED_EDGES_SECTION
// both use.
func skipUntilSentinel(sc *bufio.Scanner, lineNo int) (int, error) {
	for sc.Scan() {
		lineNo++
		if strings.TrimSpace(sc.Text()) == "-1" {
			return lineNo, nil
		}
	}
	return lineNo, fmt.Errorf("line %d: %w", lineNo, ErrUnexpectedEOF)
}

// skipLines discards exactly count lines, the shape DEMAND_SECTION uses
// (one "id demand" line per node, no sentinel terminator).
func skipLines(sc *bufio.Scanner, count, lineNo int) (int, error) {
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return lineNo, fmt.Errorf("line %d: %w", lineNo, ErrUnexpectedEOF)
		}
		lineNo++
	}
	return lineNo, nil
}

// readEdgeWeightSection reads the dense or triangular EDGE_WEIGHT_SECTION
// block and returns a row-major n*n matrix plus the advanced line counter.
func readEdgeWeightSection(sc *bufio.Scanner, n int, format string, lineNo int) ([]float64, int, error) {
	m := make([]float64, n*n)

	readTokens := func(count int) ([]float64, error) {
		vals := make([]float64, 0, count)
		for len(vals) < count {
			if !sc.Scan() {
				return nil, ErrUnexpectedEOF
			}
			lineNo++
			for _, f := range strings.Fields(sc.Text()) {
				w, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, ErrMalformedLine
				}
				vals = append(vals, w)
			}
		}
		return vals, nil
	}

	switch format {
	case "", "FULL_MATRIX":
		vals, err := readTokens(n * n)
		if err != nil {
			return nil, lineNo, fmt.Errorf("line %d: %w", lineNo, err)
		}
		copy(m, vals)
	case "UPPER_ROW":
		for i := 0; i < n; i++ {
			vals, err := readTokens(n - i - 1)
			if err != nil {
				return nil, lineNo, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for k, w := range vals {
				j := i + 1 + k
				m[i*n+j] = w
				m[j*n+i] = w
			}
		}
	case "UPPER_DIAG_ROW":
		for i := 0; i < n; i++ {
			vals, err := readTokens(n - i)
			if err != nil {
				return nil, lineNo, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for k, w := range vals {
				j := i + k
				m[i*n+j] = w
				m[j*n+i] = w
			}
		}
	case "LOWER_DIAG_ROW":
		for i := 0; i < n; i++ {
			vals, err := readTokens(i + 1)
			if err != nil {
				return nil, lineNo, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for k, w := range vals {
				j := k
				m[i*n+j] = w
				m[j*n+i] = w
			}
		}
	default:
		return nil, lineNo, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownKeyword, format)
	}

	return m, lineNo, nil
}
