package params

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParametersDefaultsAndOverlay(t *testing.T) {
	const src = `PROBLEM_FILE = instance.tsp
RUNS = 3
SEED = 42
MOVE_TYPE = 3
OPTIMUM = 1234.5
`
	p, err := ReadParameters(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "instance.tsp", p.ProblemFile)
	assert.Equal(t, 3, p.Runs)
	assert.Equal(t, int64(42), p.Seed)
	assert.Equal(t, 3, p.MoveType)
	require.NotNil(t, p.Optimum)
	assert.Equal(t, 1234.5, *p.Optimum)
	// untouched fields keep their documented defaults
	assert.Equal(t, 5, p.MaxCandidates)
	assert.True(t, p.StopAtOptimum)
}

func TestReadParametersMissingProblemFile(t *testing.T) {
	_, err := ReadParameters(strings.NewReader("RUNS = 1\n"))
	assert.ErrorIs(t, err, ErrMissingProblemFile)
}

func TestReadParametersUnknownKeyword(t *testing.T) {
	_, err := ReadParameters(strings.NewReader("PROBLEM_FILE = x\nBOGUS = 1\n"))
	assert.ErrorIs(t, err, ErrUnknownKeyword)
}

func TestResolveMaxTrialsFallsBackToDimension(t *testing.T) {
	p := Default()
	assert.Equal(t, 100, p.ResolveMaxTrials(100))
	p.MaxTrials = 7
	assert.Equal(t, 7, p.ResolveMaxTrials(100))
}

func TestResolveTimeLimitDefaultsToInfinity(t *testing.T) {
	p := Default()
	assert.True(t, math.IsInf(p.ResolveTimeLimit(), 1))
	p.TimeLimit = 30
	assert.Equal(t, 30.0, p.ResolveTimeLimit())
}

func TestReadParametersTimeLimitAndInitialTourAlgorithm(t *testing.T) {
	const src = `PROBLEM_FILE = instance.tsp
TIME_LIMIT = 12.5
INITIAL_TOUR_ALGORITHM = Greedy
BACKTRACKING = 3
`
	p, err := ReadParameters(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.TimeLimit)
	assert.Equal(t, "greedy", p.InitialTourAlgorithm)
	assert.Equal(t, 3, p.Backtracking)
}

func TestReadParametersAcceptsPartitioningKeywords(t *testing.T) {
	const src = `PROBLEM_FILE = instance.tsp
INITIAL_PERIOD = 10
SUBPROBLEM_SIZE = 5000
PARTITIONING = K-MEANS
`
	p, err := ReadParameters(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 10, p.InitialPeriod)
	assert.Equal(t, 5000, p.SubproblemSize)
	assert.Equal(t, "K-MEANS", p.PartitioningSelector)
}
