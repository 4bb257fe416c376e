package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTourFile parses a TSPLIB tour file's TOUR_SECTION into a 0-based
// closed tour of length dimension+1 (tour[0]==tour[dimension]). A "-1"
// line or EOF marks the end of the section. Node ids in the file are
// 1-based; the returned indices are translated to 0-based here (WriteTour
// and ReadProblem do the same translation for their own data).
func ReadTourFile(r io.Reader, dimension int) ([]int32, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		inSection bool
		lineNo    int
		seq       []int32
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}
		if !inSection {
			if line == "TOUR_SECTION" {
				inSection = true
			}
			continue
		}
		if line == "-1" {
			break
		}
		for _, f := range strings.Fields(line) {
			id, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
			}
			if id == -1 {
				break
			}
			seq = append(seq, int32(id-1))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(seq) != dimension {
		return nil, ErrTourDimensionMismatch
	}
	out := make([]int32, dimension+1)
	copy(out, seq)
	out[dimension] = seq[0]
	return out, nil
}

// WriteTour writes tour (closed, 0-based, length n+1) as a TSPLIB tour
// file, translating back to 1-based node identifiers.
func WriteTour(w io.Writer, name string, tour []int32) error {
	if len(tour) < 2 {
		return ErrMalformedLine
	}
	n := len(tour) - 1
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME : %s.tour\n", name)
	fmt.Fprintf(bw, "TYPE : TOUR\n")
	fmt.Fprintf(bw, "DIMENSION : %d\n", n)
	fmt.Fprintf(bw, "TOUR_SECTION\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "%d\n", tour[i]+1)
	}
	fmt.Fprintf(bw, "-1\n")
	fmt.Fprintf(bw, "EOF\n")
	return bw.Flush()
}
