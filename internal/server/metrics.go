package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per server so tests can build several.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	// questions counts playground generations by status: success/failure.
	questions *prometheus.CounterVec

	// explores counts explore requests by mode (full/stream) and status.
	explores *prometheus.CounterVec

	activeStreams prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "curio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "curio_http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		questions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "curio_questions_generated_total",
				Help: "Total number of question generation attempts",
			},
			[]string{"status"},
		),
		explores: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "curio_explore_requests_total",
				Help: "Total number of explore requests",
			},
			[]string{"mode", "status"},
		),
		activeStreams: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "curio_explore_streams_active",
				Help: "Current number of open explore streams",
			},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
