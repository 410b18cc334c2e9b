package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveOperation("create", ResultSuccess, 5*time.Millisecond)
	pr.ObserveOperation("create", ResultDuplicate, time.Millisecond)
	pr.ObserveOperation("create", ResultSuccess, time.Millisecond)
	pr.ObserveRender(3, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.opResults.WithLabelValues("create", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.opResults.WithLabelValues("create", "duplicate")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.renderedRows), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.renders), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "tasklist_operation_results_total")
	assert.Contains(t, names, "tasklist_render_duration_seconds")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveOperation("create", ResultSuccess, time.Second)
	r.ObserveRender(1, time.Second)
}
