package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	opDuration     *prom.HistogramVec
	opResults      *prom.CounterVec
	renderDuration prom.Histogram
	renderedRows   prom.Gauge
	renders        prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		opDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "tasklist",
			Name:      "operation_duration_seconds",
			Help:      "Duration of task operations including the re-render",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
		opResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tasklist",
			Name:      "operation_results_total",
			Help:      "Task operation counts by outcome",
		}, []string{"op", "result"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "tasklist",
			Name:      "render_duration_seconds",
			Help:      "Duration of full list renders",
			Buckets:   prom.DefBuckets,
		}),
		renderedRows: prom.NewGauge(prom.GaugeOpts{
			Namespace: "tasklist",
			Name:      "rendered_rows",
			Help:      "Rows in the most recently committed list",
		}),
		renders: prom.NewCounter(prom.CounterOpts{
			Namespace: "tasklist",
			Name:      "renders_total",
			Help:      "Committed list renders",
		}),
	}
	reg.MustRegister(pr.opDuration, pr.opResults, pr.renderDuration, pr.renderedRows, pr.renders)
	return pr
}

// ObserveOperation implements Recorder.
func (p *PrometheusRecorder) ObserveOperation(op string, result ResultLabel, d time.Duration) {
	p.opDuration.WithLabelValues(op).Observe(d.Seconds())
	p.opResults.WithLabelValues(op, string(result)).Inc()
}

// ObserveRender implements Recorder.
func (p *PrometheusRecorder) ObserveRender(rows int, d time.Duration) {
	p.renderDuration.Observe(d.Seconds())
	p.renderedRows.Set(float64(rows))
	p.renders.Inc()
}
