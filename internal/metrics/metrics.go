package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewWriteRetriesTotal counts retries of contended order writes.
func NewWriteRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_write_retries_total",
		Help: "Total number of retry attempts performed for contended order writes",
	})
}

// NewStatusTransitionsTotal counts applied order status transitions by source and target status.
func NewStatusTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Total number of applied order status transitions",
	}, []string{"from", "to"})
}

// NewCourierAssignmentsTotal counts courier assignment decisions by outcome.
func NewCourierAssignmentsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_assignments_total",
		Help: "Total number of courier assignment decisions",
	}, []string{"outcome"})
}

// NewInvariantViolations reports the rows found by the last lifecycle audit.
func NewInvariantViolations() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "order_invariant_violations",
		Help: "Rows violating order lifecycle invariants at the last audit",
	}, []string{"invariant"})
}

// NewKafkaEventsTotal counts consumed order events by result.
func NewKafkaEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_events_total",
		Help: "Total number of consumed order events",
	}, []string{"result"})
}

// NewHTTPRequestsTotal counts served HTTP requests by route pattern.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration observes HTTP request latency by route pattern.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
