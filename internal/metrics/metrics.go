// Package metrics defines the Prometheus collectors exported by the snippet service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
)

const namespace = "snippet_service"

// Summarize outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route template, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	SummarizeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summarize_total",
			Help:      "Summarization calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	SummarizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_duration_seconds",
			Help:      "Summarization latency by provider.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)
)

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler { return promhttp.Handler() }

// ObserveSummarize records one summarization call.
func ObserveSummarize(provider string, err error, d time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	SummarizeTotal.WithLabelValues(provider, outcome).Inc()
	SummarizeDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Middleware records request counts and latency labelled by the matched mux
// route template.
func Middleware(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, _ int, d time.Duration) {
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(d.Seconds())
	})(next)
}
