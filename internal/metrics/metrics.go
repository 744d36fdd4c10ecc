// Package metrics holds the Prometheus collectors exported by the weather tool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttemptsTotal counts every attempt made by a retry schedule, by outcome.
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_attempts_total",
			Help: "Total number of attempts executed by retry schedules",
		},
		[]string{"operation", "outcome"},
	)

	// RetriesTotal counts scheduled retries, labelled with the failure kind that caused them.
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_retries_total",
			Help: "Total number of retries scheduled after a transient failure",
		},
		[]string{"operation", "kind"},
	)

	// HTTPRequestsTotal tracks outbound HTTP calls per host and status code.
	// Transport failures without a response are recorded with code "error".
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_http_requests_total",
			Help: "Total number of outbound HTTP requests",
		},
		[]string{"host", "code"},
	)

	// HTTPRequestDuration tracks outbound HTTP latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_http_request_duration_seconds",
			Help:    "Outbound HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	// PipelineRunsTotal counts finished pipeline runs. Outcome is "success" or the failure kind.
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_pipeline_runs_total",
			Help: "Total number of completed current-conditions pipeline runs",
		},
		[]string{"outcome"},
	)
)
