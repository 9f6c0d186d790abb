package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Move submission results.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Recorder owns a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	moveSubmissions *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	recorder := &Recorder{
		registry: registry,
		moveSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_move_submissions_total",
			Help: "Move submissions by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tictactoe_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		recorder.moveSubmissions,
		recorder.requests,
		recorder.requestDuration,
		collectors.NewGoCollector(),
	)

	return recorder
}

func (that *Recorder) RecordMove(result string) {
	if that == nil {
		return
	}

	that.moveSubmissions.WithLabelValues(result).Inc()
}

func (that *Recorder) RecordRequest(method, route string, status int, duration time.Duration) {
	if that == nil {
		return
	}

	that.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	that.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler - exposes the registry in the prometheus text format.
func (that *Recorder) Handler() http.Handler {
	if that == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}
