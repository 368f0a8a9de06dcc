package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plannerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_requests_total",
			Help: "Requests sent to the planning service by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	plannerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_request_duration_seconds",
			Help:    "Planning service round-trip time in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	plannerDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_decode_failures_total",
			Help: "Planning service responses that did not match the expected shape",
		},
		[]string{"endpoint"},
	)

	storeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_failures_total",
			Help: "Failed persistence operations by operation name",
		},
		[]string{"op"},
	)
)

func ObservePlannerCall(endpoint, outcome string, d time.Duration) {
	plannerCallsTotal.WithLabelValues(endpoint, outcome).Inc()
	plannerCallDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func ObservePlannerDecodeFailure(endpoint string) {
	plannerDecodeFailures.WithLabelValues(endpoint).Inc()
}

func ObserveStoreFailure(op string) {
	storeFailures.WithLabelValues(op).Inc()
}
