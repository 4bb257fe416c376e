package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIncludesObservedValues(t *testing.T) {
	r := New()
	r.Trials.Add(3)
	r.Runs.Inc()
	r.BestCost.Set(2085)
	r.BetterCost.Set(2100)
	r.RunDuration.Observe(time.Millisecond.Seconds())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "lkh_trials_total 3")
	assert.Contains(t, out, "lkh_runs_total 1")
	assert.Contains(t, out, "lkh_best_cost 2085")
	assert.Contains(t, out, "lkh_better_cost 2100")
}

func TestRenderIsIdempotentAcrossCalls(t *testing.T) {
	r := New()
	r.Trials.Inc()

	var first, second bytes.Buffer
	require.NoError(t, r.Render(&first))
	require.NoError(t, r.Render(&second))
	assert.True(t, strings.Contains(first.String(), "lkh_trials_total 1"))
	assert.Equal(t, first.String(), second.String())
}
