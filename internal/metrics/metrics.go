// Package metrics exposes Prometheus collectors for the flagfetch service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	downloadsTotal               *prometheus.CounterVec
	remoteRequestsTotal          *prometheus.CounterVec
	remoteRequestDurationSeconds *prometheus.HistogramVec
	searchQueriesTotal           prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		downloadsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flagfetch_downloads_total",
				Help: "Total number of completed downloads, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		remoteRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flagfetch_remote_requests_total",
				Help: "Total number of CDN exchanges, labeled by status class.",
			},
			[]string{"class"},
		)

		remoteRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flagfetch_remote_request_duration_seconds",
				Help:    "Histogram of CDN exchange latencies, labeled by status class.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"class"},
		)

		searchQueriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flagfetch_search_queries_total",
				Help: "Total number of character-name index queries served.",
			},
		)
	})
}

// ClassifyStatus groups HTTP status codes for remote request metrics. Code 0
// denotes an exchange that produced no response at all.
func ClassifyStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	case code == 0:
		return "transport"
	default:
		return "other"
	}
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDownload increments the download counter for the given outcome.
func ObserveDownload(outcome string) {
	if downloadsTotal == nil {
		return
	}
	downloadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRemoteRequest records one CDN exchange.
func ObserveRemoteRequest(code int, duration time.Duration) {
	if remoteRequestsTotal == nil {
		return
	}
	class := ClassifyStatus(code)
	remoteRequestsTotal.WithLabelValues(class).Inc()
	remoteRequestDurationSeconds.WithLabelValues(class).Observe(duration.Seconds())
}

// ObserveSearchQuery increments the index query counter.
func ObserveSearchQuery() {
	if searchQueriesTotal == nil {
		return
	}
	searchQueriesTotal.Inc()
}
