// Package params parses LKH-style parameter files: line-oriented
// `KEYWORD = VALUE` pairs with documented defaults for every field the
// solver reads, in the same staged sentinel-error validation style the
// rest of this repository uses for untrusted input. No third-party config
// library is used; the format is bespoke and case-insensitive in a way no
// retrieved example's YAML/TOML/INI parser models.
package params

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Parameters holds every tunable the solver reads from a parameter file.
// Field names mirror the parameter-file keywords; documented defaults are
// applied by Default().
type Parameters struct {
	ProblemFile    string
	OutputTourFile string

	Runs           int
	MaxTrials      int
	Seed           int64
	MoveType       int
	Backtracking   int
	BackboneTrials int
	MaxCandidates  int
	Precision      int
	PopulationSize int

	// TimeLimit is seconds; Default() sets it to math.Inf(1), meaning "no
	// limit". An explicit 0 allows exactly one trial.
	TimeLimit float64

	// InitialTourAlgorithm selects the construct package function used for
	// each trial's starting tour: one of "walk" (default), "nearest-neighbor",
	// "greedy", "boruvka", "random".
	InitialTourAlgorithm string

	// Optimum is nil unless the parameter file supplied OPTIMUM; StopAtOptimum
	// is only honored when Optimum != nil (see DESIGN.md's Open Question
	// decision).
	Optimum       *float64
	StopAtOptimum bool

	// InitialPeriod, SubproblemSize, and PartitioningSelector are recognized
	// keywords with no effect here: subproblem partitioning is excluded as
	// an external collaborator (spec.md §1), so these are parsed and kept
	// only so a standard parameter file that sets them doesn't fail to
	// parse (see DESIGN.md's params entry).
	InitialPeriod        int
	SubproblemSize       int
	PartitioningSelector string

	TraceLevel int
}

// Default returns the documented defaults for every field not otherwise
// supplied by a parameter file.
func Default() Parameters {
	return Parameters{
		Runs:           10,
		MaxTrials:      0, // 0 means "use problem dimension", resolved by the caller once Dimension is known
		Seed:           1,
		MoveType:       5,
		BackboneTrials: 0,
		MaxCandidates:  5,
		Backtracking:   5,
		Precision:      100,
		PopulationSize: 1,
		StopAtOptimum:  true,
		InitialTourAlgorithm: "walk",
		// TimeLimit defaults to "no limit"; an explicit TIME_LIMIT = 0 in a
		// parameter file means something different (stop after exactly one
		// trial) and must stay distinguishable from this default, so the
		// zero value itself can't mean "unset" here.
		TimeLimit: math.Inf(1),
	}
}

// ReadParameters parses a parameter file from r, overlaying values onto
// Default(). Unknown keys are a fatal parse error per spec.md's error
// handling design.
func ReadParameters(r io.Reader) (Parameters, error) {
	p := Default()
	sc := bufio.NewScanner(r)

	var lineNo int
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, err := splitKeyValue(line)
		if err != nil {
			return p, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := p.apply(strings.ToUpper(key), val); err != nil {
			return p, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return p, err
	}
	if p.ProblemFile == "" {
		return p, ErrMissingProblemFile
	}
	return p, nil
}

func (p *Parameters) apply(key, val string) error {
	switch key {
	case "PROBLEM_FILE":
		p.ProblemFile = val
	case "OUTPUT_TOUR_FILE", "TOUR_FILE":
		p.OutputTourFile = val
	case "RUNS":
		return setInt(&p.Runs, val)
	case "MAX_TRIALS":
		return setInt(&p.MaxTrials, val)
	case "SEED":
		return setInt64(&p.Seed, val)
	case "MOVE_TYPE":
		return setInt(&p.MoveType, val)
	case "BACKTRACKING":
		return setInt(&p.Backtracking, val)
	case "BACKBONE_TRIALS":
		return setInt(&p.BackboneTrials, val)
	case "MAX_CANDIDATES":
		return setInt(&p.MaxCandidates, val)
	case "PRECISION":
		return setInt(&p.Precision, val)
	case "POPULATION_SIZE", "MAX_POPULATION_SIZE":
		return setInt(&p.PopulationSize, val)
	case "TRACE_LEVEL":
		return setInt(&p.TraceLevel, val)
	case "TIME_LIMIT":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedValue, val)
		}
		p.TimeLimit = f
	case "INITIAL_TOUR_ALGORITHM":
		p.InitialTourAlgorithm = strings.ToLower(val)
	case "INITIAL_PERIOD":
		return setInt(&p.InitialPeriod, val)
	case "SUBPROBLEM_SIZE":
		return setInt(&p.SubproblemSize, val)
	case "PARTITIONING", "PARTITIONING_SELECTOR", "SUBPROBLEM_BORDERS":
		p.PartitioningSelector = val
	case "STOP_AT_OPTIMUM":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedValue, val)
		}
		p.StopAtOptimum = b
	case "OPTIMUM":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedValue, val)
		}
		p.Optimum = &f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKeyword, key)
	}
	return nil
}

func setInt(dst *int, val string) error {
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedValue, val)
	}
	*dst = v
	return nil
}

func setInt64(dst *int64, val string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedValue, val)
	}
	*dst = v
	return nil
}

func splitKeyValue(line string) (key, val string, err error) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", ErrMalformedLine
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), nil
}

// ResolveMaxTrials returns MaxTrials if it was explicitly set (>0),
// otherwise the problem dimension — the documented default.
func (p Parameters) ResolveMaxTrials(dimension int) int {
	if p.MaxTrials > 0 {
		return p.MaxTrials
	}
	return dimension
}

// ResolveTimeLimit returns the effective time limit in seconds. It exists
// alongside the TimeLimit field itself so callers have one place to read
// from regardless of whether Default() or a parsed TIME_LIMIT set it.
func (p Parameters) ResolveTimeLimit() float64 {
	return p.TimeLimit
}
