// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActivitySignups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Total number of successful signups per activity",
		},
		[]string{"activity"},
	)

	ActivityUnregisters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_unregisters_total",
			Help: "Total number of successful unregistrations per activity",
		},
		[]string{"activity"},
	)

	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_requests_failed_total",
			Help: "Total number of failed requests by operation and error code",
		},
		[]string{"operation", "error_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "status"},
	)

	RosterSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_roster_size",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)
)
