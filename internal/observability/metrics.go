// Package observability holds the Prometheus collectors shared by the HTTP
// layer and the services.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enlaceiba_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enlaceiba_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthEventsTotal counts credential operations by outcome.
	AuthEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enlaceiba_auth_events_total",
		Help: "Authentication operations by action and outcome",
	}, []string{"action", "outcome"})

	// RedisErrorsTotal counts Redis failures by operation.
	RedisErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enlaceiba_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, start time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// RecordAuth increments the auth counter; outcome is "success" or "failure".
func RecordAuth(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	AuthEventsTotal.WithLabelValues(action, outcome).Inc()
}
