// Package metrics reports trial/run progress through an in-process
// Prometheus registry, rendered to stderr at program exit — the direct
// analogue of the original program's InitializeStatistics/UpdateStatistics/
// PrintStatistics calls around its run loop. Grounded on
// joshuarotgers-USPS_Main/internal/metrics/metrics.go's dedicated-registry
// pattern and internal/opt/metrics_store.go's run-scoped recording.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Registry holds every counter/gauge/histogram the solver updates during a
// program run, on its own prometheus.Registry rather than the global
// default one so a single process can run more than one solve without
// double-registration panics.
type Registry struct {
	reg *prometheus.Registry

	Trials      prometheus.Counter
	Runs        prometheus.Counter
	BestCost    prometheus.Gauge
	BetterCost  prometheus.Gauge
	RunDuration prometheus.Histogram
}

// New builds and registers a fresh Registry.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Trials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lkh_trials_total", Help: "Total LK trials attempted across all runs.",
		}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lkh_runs_total", Help: "Total outer runs completed.",
		}),
		BestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lkh_best_cost", Help: "Cost of the best tour found so far.",
		}),
		BetterCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lkh_better_cost", Help: "Cost of the best tour found within the current run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "lkh_run_duration_seconds", Help: "Wall-clock duration of one outer run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	r.reg.MustRegister(r.Trials, r.Runs, r.BestCost, r.BetterCost, r.RunDuration)
	r.reg.MustRegister(collectors.NewGoCollector())
	return r
}

// Render writes every registered metric family to w in Prometheus's
// human-readable text exposition format, the stderr block the original
// program's PrintStatistics produced at exit.
func (r *Registry) Render(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
