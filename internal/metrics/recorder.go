// Package metrics records controller operations and renders.
//
// Components hold a Recorder and default to NoopRecorder; the web surface
// swaps in a PrometheusRecorder and exposes it on /metrics.
package metrics

import "time"

// ResultLabel enumerates operation outcomes for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultDuplicate ResultLabel = "duplicate"
	ResultNotFound  ResultLabel = "not_found"
	ResultInvalid   ResultLabel = "invalid"
	ResultError     ResultLabel = "error"
)

// Recorder defines the hooks the controller calls.
type Recorder interface {
	ObserveOperation(op string, result ResultLabel, d time.Duration)
	ObserveRender(rows int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperation(string, ResultLabel, time.Duration) {}
func (NoopRecorder) ObserveRender(int, time.Duration)                    {}
